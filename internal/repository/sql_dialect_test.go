package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"title", "description"}, []string{"tags"})
	if argCount != 3 {
		t.Fatalf("arg count want 3 got %d", argCount)
	}
	if !strings.Contains(condition, "title LIKE ?") {
		t.Fatalf("condition should contain title LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "tags LIKE ?") {
		t.Fatalf("condition should contain raw tags LIKE on sqlite, got %s", condition)
	}
	if !strings.HasPrefix(condition, "(") || !strings.HasSuffix(condition, ")") {
		t.Fatalf("condition should be wrapped in parentheses, got %s", condition)
	}
}

func TestBuildLikeConditionPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"title"}, []string{"tags"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "title ILIKE ?") {
		t.Fatalf("postgres should use ILIKE, got %s", condition)
	}
	if !strings.Contains(condition, "CAST(tags AS TEXT) ILIKE ?") {
		t.Fatalf("postgres should cast json column, got %s", condition)
	}
}

func TestBuildLikeConditionEmpty(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{" "}, nil)
	if condition != "" || argCount != 0 {
		t.Fatalf("empty columns want empty condition, got %q %d", condition, argCount)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}

func TestEscapeLike(t *testing.T) {
	got := escapeLike(`50%_off\`)
	want := `50\%\_off\\`
	if got != want {
		t.Fatalf("escape like want %s got %s", want, got)
	}
}
