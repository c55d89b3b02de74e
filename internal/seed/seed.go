// Package seed provides the demo memos granted to a new account's first
// session, with an optional YAML fixture file that can be edited and
// hot-reloaded at runtime.
package seed

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jwlee-dev/memopad/internal/models"
)

// Entry is one seed memo. AgeDays shifts its creation time into the past
// so the seeded collection spans several calendar days.
type Entry struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Color   string `yaml:"color"`
	Pinned  bool   `yaml:"pinned"`
	AgeDays int    `yaml:"age_days"`
}

// Default returns the built-in demo memos: six entries, two pinned,
// created over the past six days.
func Default() []Entry {
	return []Entry{
		{
			Title:   "오늘의 할 일",
			Content: "1. 프로젝트 미팅 참석\n2. 보고서 작성 완료\n3. 저녁 운동하기\n4. 책 30분 읽기",
			Color:   "peach",
			Pinned:  true,
		},
		{
			Title:   "회의 메모",
			Content: "다음 주 프로젝트 일정 논의\n- 디자인 검토: 월요일\n- 개발 시작: 화요일\n- QA 테스트: 금요일",
			Color:   "mint",
			AgeDays: 1,
		},
		{
			Title:   "장보기 목록",
			Content: "우유, 계란, 빵, 사과, 바나나, 치즈",
			Color:   "lemon",
			AgeDays: 2,
		},
		{
			Title:   "아이디어 노트",
			Content: "새로운 앱 기능 아이디어:\n- 음성 메모 지원\n- 이미지 첨부\n- 태그 시스템\n- 다크 모드",
			Color:   "lavender",
			Pinned:  true,
			AgeDays: 3,
		},
		{
			Title:   "독서 기록",
			Content: "「세이노의 가르침」 - 인생의 방향에 대해 깊이 생각하게 되었다. 매일 조금씩이라도 성장하자.",
			Color:   "rose",
			AgeDays: 4,
		},
		{
			Title:   "맛집 리스트",
			Content: "1. 강남역 파스타집\n2. 홍대 브런치 카페\n3. 이태원 타코집",
			Color:   "sky",
			AgeDays: 5,
		},
	}
}

// Materialize turns seed entries into memos with fresh ids and timestamps
// anchored at now. Entries with an invalid color are rejected so seeds
// cannot smuggle unrepresentable state past the store boundary.
func Materialize(entries []Entry, now time.Time) ([]models.Memo, error) {
	out := make([]models.Memo, 0, len(entries))
	for i, e := range entries {
		color, err := models.ParseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("seed: entry %d: %w", i, err)
		}
		created := now.Add(-time.Duration(e.AgeDays) * 24 * time.Hour)
		out = append(out, models.Memo{
			ID:        uuid.NewString(),
			Title:     e.Title,
			Content:   e.Content,
			Color:     color,
			IsPinned:  e.Pinned,
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return out, nil
}

// Source serves the current seed entries. When backed by a fixture file it
// can be reloaded concurrently with readers, so access is guarded.
type Source struct {
	path string

	mu      sync.RWMutex
	entries []Entry
}

// NewSource creates a source from the fixture at path, or from the
// built-in defaults when path is empty.
func NewSource(path string) (*Source, error) {
	s := &Source{path: path, entries: Default()}
	if path == "" {
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Entries returns a copy of the current seed set.
func (s *Source) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Memos materializes the current seed set at now.
func (s *Source) Memos(now time.Time) ([]models.Memo, error) {
	return Materialize(s.Entries(), now)
}

// Reload re-reads the fixture file. The previous entries are kept when the
// new content is unreadable or invalid.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("seed: read fixture: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("seed: parse fixture: %w", err)
	}
	if _, err := Materialize(entries, time.Now()); err != nil {
		return err
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}
