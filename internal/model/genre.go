package model

import "strings"

// Genre 封闭的电影类型词表（TMDB 类型 ID）
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var genres = []Genre{
	{"28", "action"},
	{"12", "adventure"},
	{"10759", "action & adventure"},
	{"16", "animation"},
	{"35", "comedy"},
	{"80", "crime"},
	{"99", "documentary"},
	{"18", "drama"},
	{"10751", "family"},
	{"10762", "kids"},
	{"14", "fantasy"},
	{"9648", "mystery"},
	{"10763", "news"},
	{"10764", "reality"},
	{"10765", "sci-fi & fantasy"},
	{"10766", "soap"},
	{"10767", "talk"},
	{"10768", "war & politics"},
	{"37", "western"},
	{"36", "history"},
	{"27", "horror"},
	{"10402", "music"},
	{"10749", "romance"},
	{"878", "science fiction"},
	{"53", "thriller"},
	{"10770", "tv movie"},
	{"10752", "war"},
}

var genreIndex = func() map[string]Genre {
	m := make(map[string]Genre, len(genres)*2)
	for _, g := range genres {
		m[g.ID] = g
		m[g.Name] = g
	}
	return m
}()

// LookupGenre 按 ID 或名称（不区分大小写）查找类型
func LookupGenre(s string) (Genre, bool) {
	g, ok := genreIndex[strings.ToLower(strings.TrimSpace(s))]
	return g, ok
}

// Genres 返回完整词表的副本
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}
