package domain

import "strings"

// WikipediaRef - ссылка на статью из OSM тега wikipedia ("es:Teide")
type WikipediaRef struct {
	Lang  string `json:"lang"`
	Title string `json:"title"`
}

// ParseWikipediaRef разбирает тег вида "lang:Title".
// Возвращает false, если язык или заголовок пусты.
func ParseWikipediaRef(tag string) (WikipediaRef, bool) {
	idx := strings.Index(tag, ":")
	if idx <= 0 {
		return WikipediaRef{}, false
	}
	lang := strings.TrimSpace(tag[:idx])
	title := strings.TrimSpace(tag[idx+1:])
	if lang == "" || title == "" {
		return WikipediaRef{}, false
	}
	return WikipediaRef{Lang: lang, Title: title}, true
}

// Summary - краткое содержание статьи энциклопедии
type Summary struct {
	Title        string `json:"title"`
	Extract      string `json:"extract"`
	PageURL      string `json:"page_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}
