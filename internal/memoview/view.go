// Package memoview derives the search-filtered, pin-partitioned view and
// aggregate counts from a memo collection. Everything here is a pure
// function of its inputs.
package memoview

import (
	"strings"
	"time"

	"github.com/jwlee-dev/memopad/internal/models"
)

// Fallback display labels for memos saved with an empty title or content.
// Applied at render time, never stored.
const (
	FallbackTitle   = "제목 없음"
	FallbackContent = "내용이 없습니다."
)

// Empty-state copy. The message distinguishes "no search hits" from "no
// memos at all" so an empty list is never ambiguous.
const (
	emptySearchTitle = "검색 결과가 없어요"
	emptySearchHint  = "다른 검색어로 시도해 보세요."
	emptyTitle       = "아직 메모가 없어요"
	emptyHint        = "오른쪽 아래의 + 버튼을 눌러 첫 번째 메모를 작성해 보세요!"
)

// EmptyState is the distinguished signal produced when the filtered set is
// empty.
type EmptyState struct {
	Title     string `json:"title"`
	Hint      string `json:"hint"`
	Searching bool   `json:"searching"`
}

// View is the pin-partitioned, search-filtered rendering of a collection.
// Both partitions preserve their relative order from the underlying
// sequence.
type View struct {
	Pinned []models.Memo `json:"pinned"`
	Others []models.Memo `json:"others"`
	Empty  *EmptyState   `json:"empty,omitempty"`
}

// Stats are aggregate counts over the full, unfiltered collection.
type Stats struct {
	Total  int `json:"total"`
	Pinned int `json:"pinned"`
	Today  int `json:"today"`
}

// Matches reports whether the memo matches the query: a case-insensitive
// substring match against title or content. The empty query matches
// everything.
func Matches(m models.Memo, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Content), q)
}

// Filter applies the query and partitions the hits into pinned and
// unpinned sections.
func Filter(memos []models.Memo, query string) View {
	v := View{Pinned: []models.Memo{}, Others: []models.Memo{}}
	for _, m := range memos {
		if !Matches(m, query) {
			continue
		}
		if m.IsPinned {
			v.Pinned = append(v.Pinned, m)
		} else {
			v.Others = append(v.Others, m)
		}
	}
	if len(v.Pinned) == 0 && len(v.Others) == 0 {
		if query != "" {
			v.Empty = &EmptyState{Title: emptySearchTitle, Hint: emptySearchHint, Searching: true}
		} else {
			v.Empty = &EmptyState{Title: emptyTitle, Hint: emptyHint}
		}
	}
	return v
}

// Derive computes the unfiltered stats. Today counts memos whose CreatedAt
// falls on the same calendar day as now, in now's location.
func Derive(memos []models.Memo, now time.Time) Stats {
	st := Stats{Total: len(memos)}
	y, mo, d := now.Date()
	for _, m := range memos {
		if m.IsPinned {
			st.Pinned++
		}
		cy, cmo, cd := m.CreatedAt.In(now.Location()).Date()
		if cy == y && cmo == mo && cd == d {
			st.Today++
		}
	}
	return st
}

// DisplayTitle returns the title or its fallback label.
func DisplayTitle(m models.Memo) string {
	if m.Title == "" {
		return FallbackTitle
	}
	return m.Title
}

// DisplayContent returns the content or its fallback label.
func DisplayContent(m models.Memo) string {
	if m.Content == "" {
		return FallbackContent
	}
	return m.Content
}
