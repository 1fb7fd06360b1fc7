package store

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"citeassist/src/internal/schema"
)

// ErrNotFound is returned when no item carries the requested id.
var ErrNotFound = errors.New("store: item not found")

// Item is one stored citation. ID and Added survive edits.
type Item struct {
	ID     string        `yaml:"id" json:"id"`
	Added  time.Time     `yaml:"added" json:"added"`
	Record schema.Record `yaml:"record" json:"record"`
}

// List is the ordered citation list. Operations return a new List and leave
// the receiver untouched.
type List []Item

func (l List) clone() List { return append(List{}, l...) }

// Add prepends rec under a fresh id and returns the new list and item.
func (l List) Add(rec schema.Record, now time.Time) (List, Item) {
	it := Item{ID: schema.NewID(), Added: now.UTC(), Record: rec.Clone()}
	return append(List{it}, l...), it
}

// Index returns the position of id, or -1. Ids match case-insensitively and
// a unique prefix is accepted.
func (l List) Index(id string) int {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return -1
	}
	match := -1
	for i, it := range l {
		lid := strings.ToLower(it.ID)
		if lid == id {
			return i
		}
		if strings.HasPrefix(lid, id) {
			if match >= 0 {
				return -1
			}
			match = i
		}
	}
	return match
}

// Find returns the item for id.
func (l List) Find(id string) (Item, error) {
	i := l.Index(id)
	if i < 0 {
		return Item{}, ErrNotFound
	}
	return l[i], nil
}

// Remove drops the item with id.
func (l List) Remove(id string) (List, error) {
	i := l.Index(id)
	if i < 0 {
		return l, ErrNotFound
	}
	out := l.clone()
	return append(out[:i], out[i+1:]...), nil
}

// Replace swaps the record of id for rec, keeping its id and position.
func (l List) Replace(id string, rec schema.Record) (List, error) {
	i := l.Index(id)
	if i < 0 {
		return l, ErrNotFound
	}
	out := l.clone()
	out[i].Record = rec.Clone()
	return out, nil
}

// Move relocates id to index to, clamped to the list bounds.
func (l List) Move(id string, to int) (List, error) {
	i := l.Index(id)
	if i < 0 {
		return l, ErrNotFound
	}
	out := l.clone()
	it := out[i]
	out = append(out[:i], out[i+1:]...)
	if to < 0 {
		to = 0
	}
	if to > len(out) {
		to = len(out)
	}
	out = append(out[:to], append(List{it}, out[to:]...)...)
	return out, nil
}

// SortByTitle orders items by case-insensitive title; ties keep list order.
func (l List) SortByTitle() List {
	out := l.clone()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Record.Title) < strings.ToLower(out[j].Record.Title)
	})
	return out
}

// SortByAdded orders items oldest first.
func (l List) SortByAdded() List {
	out := l.clone()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Added.Before(out[j].Added) })
	return out
}

// Records returns the records in list order.
func (l List) Records() []schema.Record {
	out := make([]schema.Record, 0, len(l))
	for _, it := range l {
		out = append(out, it.Record)
	}
	return out
}

// Search keeps the items whose words include every term (case-insensitive).
// Words come from the title, author names, container, publisher, year, DOI
// and type.
func (l List) Search(terms []string) List {
	var want []string
	for _, t := range terms {
		want = append(want, tokenizeWords(t)...)
	}
	if len(want) == 0 {
		return l.clone()
	}
	out := List{}
	for _, it := range l {
		set := wordSet(it.Record)
		hit := true
		for _, w := range want {
			if !set[w] {
				hit = false
				break
			}
		}
		if hit {
			out = append(out, it)
		}
	}
	return out
}

func wordSet(r schema.Record) map[string]bool {
	set := map[string]bool{}
	add := func(s string) {
		for _, w := range tokenizeWords(s) {
			set[w] = true
		}
	}
	add(r.Title)
	add(r.Container)
	add(r.Publisher)
	add(r.DOI)
	add(string(r.Type))
	for _, a := range r.Authors {
		add(a.Given)
		add(a.Family)
		add(a.Literal)
	}
	if y, ok := r.ResolvedYear(); ok {
		set[strconv.Itoa(y)] = true
	}
	return set
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// tokenizeWords splits a phrase into lowercased word tokens, filtering empties
// and 1-character tokens.
func tokenizeWords(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := nonWord.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(p)
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}
