package config

import (
	"errors"
	"reflect"
	"testing"
)

func TestAspects(t *testing.T) {
	t.Run("unset falls back to defaults", func(t *testing.T) {
		t.Setenv("ANALYSIS_ASPECTS", "")
		if got := Aspects(); !reflect.DeepEqual(got, DefaultAspects) {
			t.Fatalf("Aspects() = %v, want defaults", got)
		}
	})

	t.Run("comma list overrides defaults", func(t *testing.T) {
		t.Setenv("ANALYSIS_ASPECTS", "soundtrack, costumes ,editing")
		want := []string{"soundtrack", "costumes", "editing"}
		if got := Aspects(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Aspects() = %v, want %v", got, want)
		}
	})

	t.Run("blank entries only falls back to defaults", func(t *testing.T) {
		t.Setenv("ANALYSIS_ASPECTS", " , ,")
		if got := Aspects(); !reflect.DeepEqual(got, DefaultAspects) {
			t.Fatalf("Aspects() = %v, want defaults", got)
		}
	})
}

func TestAspectsReturnsCopy(t *testing.T) {
	t.Setenv("ANALYSIS_ASPECTS", "")
	got := Aspects()
	got[0] = "mutated"
	if DefaultAspects[0] == "mutated" {
		t.Fatal("Aspects() aliases DefaultAspects")
	}
}

func TestOpenAIAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	key, err := OpenAIAPIKey()
	if err != nil {
		t.Fatalf("OpenAIAPIKey returned error: %v", err)
	}
	if key != "sk-test" {
		t.Fatalf("key = %q", key)
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := OpenAIAPIKey(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("missing key error = %v, want ErrMissingAPIKey", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	if got := OpenAIModel(); got != "gpt-4o" {
		t.Fatalf("OpenAIModel() = %q", got)
	}

	t.Setenv("OPENAI_MAX_TOKENS", "256")
	if got := OpenAIMaxTokens(); got != 256 {
		t.Fatalf("OpenAIMaxTokens() = %d", got)
	}

	t.Setenv("OPENAI_MAX_TOKENS", "not-a-number")
	if got := OpenAIMaxTokens(); got != DEFAULT_MAX_TOKENS {
		t.Fatalf("OpenAIMaxTokens() with bad value = %d, want default", got)
	}

	t.Setenv("NLI_THRESHOLD", "0.7")
	if got := NLIThreshold(); got != 0.7 {
		t.Fatalf("NLIThreshold() = %v", got)
	}
}
