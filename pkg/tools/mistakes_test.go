package tools

import (
	"testing"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

func TestMistakesSearch_EmptyStore(t *testing.T) {
	search := NewMistakesSearch(NewMistakeStore())
	got, err := search.Call(pub_models.Input{"topic": "ser/estar", "limit": 5.0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "No mistakes found." {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestMistakesStoreThenSearch(t *testing.T) {
	store := NewMistakeStore()
	storeTool := NewMistakesStore(store)
	search := NewMistakesSearch(store)

	got, err := storeTool.Call(pub_models.Input{"topic": "ser/estar", "detail": "confuses ser and estar for location"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "Stored mistake for topic 'ser/estar'." {
		t.Fatalf("unexpected store result: %q", got)
	}

	got, err = search.Call(pub_models.Input{"topic": "ser/estar"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "- ser/estar: confuses ser and estar for location" {
		t.Fatalf("unexpected search result: %q", got)
	}
}

func TestMistakesSearch_FilterAndLimit(t *testing.T) {
	store := NewMistakeStore()
	store.Add(MistakeRecord{Topic: "Subjunctive", Detail: "one"})
	store.Add(MistakeRecord{Topic: "articles", Detail: "two"})
	store.Add(MistakeRecord{Topic: "subjunctive", Detail: "three"})
	store.Add(MistakeRecord{Topic: "SUBJUNCTIVE", Detail: "four"})
	search := NewMistakesSearch(store)

	testCases := []struct {
		name  string
		input pub_models.Input
		want  string
	}{
		{
			name:  "case insensitive topic",
			input: pub_models.Input{"topic": "subjunctive", "limit": 5.0},
			want:  "- Subjunctive: one\n- subjunctive: three\n- SUBJUNCTIVE: four",
		},
		{
			name:  "limit keeps stored order",
			input: pub_models.Input{"topic": "subjunctive", "limit": 2.0},
			want:  "- Subjunctive: one\n- subjunctive: three",
		},
		{
			name:  "no topic returns all",
			input: pub_models.Input{"limit": 2},
			want:  "- Subjunctive: one\n- articles: two",
		},
		{
			name:  "default limit",
			input: pub_models.Input{"topic": ""},
			want:  "- Subjunctive: one\n- articles: two\n- subjunctive: three\n- SUBJUNCTIVE: four",
		},
		{
			name:  "no match",
			input: pub_models.Input{"topic": "por/para"},
			want:  "No mistakes found.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := search.Call(tc.input)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("exp %q got %q", tc.want, got)
			}
		})
	}
}

func TestMistakeStore_KeepsDuplicates(t *testing.T) {
	store := NewMistakeStore()
	rec := MistakeRecord{Topic: "a", Detail: "b"}
	store.Add(rec)
	store.Add(rec)
	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}
}

func TestMistakesStore_BadInput(t *testing.T) {
	storeTool := NewMistakesStore(NewMistakeStore())
	if _, err := storeTool.Call(pub_models.Input{"topic": 1, "detail": "x"}); err == nil {
		t.Fatal("expected error on non-string topic")
	}
}

func TestIntInput(t *testing.T) {
	for _, v := range []any{3, int64(3), 3.0} {
		got, err := intInput(pub_models.Input{"n": v}, "n")
		if err != nil || got != 3 {
			t.Fatalf("input %T: expected 3, got %v (err: %v)", v, got, err)
		}
	}
	if _, err := intInput(pub_models.Input{"n": "3"}, "n"); err == nil {
		t.Fatal("expected error for string input")
	}
}
