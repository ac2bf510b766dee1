package fuzzy

import (
	"errors"
	"testing"
)

func TestScoreTiers(t *testing.T) {
	exact, ok := Score("myproject.task1", "myproject.task1")
	if !ok || exact != 0 {
		t.Fatalf("exact score = %v, %v; want 0, true", exact, ok)
	}
	prefix, ok := Score("myproject.task1", "myproject")
	if !ok {
		t.Fatal("prefix did not match")
	}
	subseq, ok := Score("myproject.task1", "mpt1")
	if !ok {
		t.Fatal("subsequence did not match")
	}
	if !(exact < prefix && prefix < subseq) {
		t.Errorf("tier order violated: exact %v, prefix %v, subseq %v", exact, prefix, subseq)
	}
}

func TestScoreNoMatch(t *testing.T) {
	if _, ok := Score("myproject", "xyz"); ok {
		t.Error("Score matched characters absent from candidate")
	}
	if _, ok := Score("abc", "cba"); ok {
		t.Error("Score matched an out-of-order subsequence")
	}
	if _, ok := Score("abc", ""); ok {
		t.Error("empty query matched")
	}
}

func TestScorePrefixShorterRemainderWins(t *testing.T) {
	short, _ := Score("proj.a", "proj")
	long, _ := Score("proj.a.deeper", "proj")
	if short >= long {
		t.Errorf("shorter remainder should score better: %v vs %v", short, long)
	}
}

func TestScoreSubsequenceGapPenalty(t *testing.T) {
	tight, ok := Score("abcdef", "bcd")
	if !ok {
		t.Fatal("tight subsequence did not match")
	}
	loose, ok := Score("bxcxdx", "bcd")
	if !ok {
		t.Fatal("loose subsequence did not match")
	}
	if tight >= loose {
		t.Errorf("contiguous run should score better: tight %v, loose %v", tight, loose)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	upper, ok := Score("MyProj", "myproj")
	if !ok || upper != 0 {
		t.Errorf("Score(MyProj, myproj) = %v, %v; want exact match", upper, ok)
	}
}

func TestScoreExactIsUniqueMinimum(t *testing.T) {
	for _, candidate := range []string{"note", "notebook", "notes.misc"} {
		score, ok := Score(candidate, "note")
		if !ok {
			t.Fatalf("%q did not match", candidate)
		}
		if candidate == "note" && score != 0 {
			t.Errorf("exact score = %v, want 0", score)
		}
		if candidate != "note" && score == 0 {
			t.Errorf("%q scored 0 without being exact", candidate)
		}
	}
}

func TestResolve(t *testing.T) {
	candidates := []Candidate{
		{ID: "myproject"},
		{ID: "myproject.task1"},
		{ID: "myproject.task2"},
		{ID: "other"},
	}

	t.Run("unique best", func(t *testing.T) {
		m, err := Resolve("myproject.task1", candidates)
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if m.ID != "myproject.task1" {
			t.Errorf("Resolve = %q", m.ID)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := Resolve("zzz", candidates)
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("tie is ambiguous", func(t *testing.T) {
		_, err := Resolve("myproject.task", candidates)
		var ambErr *AmbiguousError
		if !errors.As(err, &ambErr) {
			t.Fatalf("error = %v, want AmbiguousError", err)
		}
		if len(ambErr.Matches) != 2 {
			t.Errorf("Matches = %v, want 2 entries", ambErr.Matches)
		}
	})
}

func TestResolveTagsArchived(t *testing.T) {
	candidates := []Candidate{
		{ID: "archive/oldproj", Archived: true},
		{ID: "newproj"},
	}
	m, err := Resolve("archive/oldproj", candidates)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !m.Archived {
		t.Error("match did not carry the archived flag")
	}
}

func TestRankOrdersBestFirst(t *testing.T) {
	candidates := []Candidate{
		{ID: "notebook"},
		{ID: "notes.misc"},
		{ID: "note"},
	}
	got := Rank("note", candidates)
	if len(got) != 3 {
		t.Fatalf("Rank returned %d matches, want 3", len(got))
	}
	if got[0].ID != "note" {
		t.Errorf("best match = %q, want note", got[0].ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score > got[i].Score {
			t.Errorf("matches out of order at %d: %v then %v", i, got[i-1], got[i])
		}
	}
}
