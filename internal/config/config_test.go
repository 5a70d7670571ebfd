package config

import "testing"

func TestGetEnvDefault(t *testing.T) {
	if got := getEnv("CAFE_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv for unset key = %q, want %q", got, "fallback")
	}
}

func TestGetEnvOverride(t *testing.T) {
	t.Setenv("CAFE_TEST_SET_KEY", "value")
	if got := getEnv("CAFE_TEST_SET_KEY", "fallback"); got != "value" {
		t.Fatalf("getEnv for set key = %q, want %q", got, "value")
	}
}

func TestGetEnvEmptyFallsBack(t *testing.T) {
	t.Setenv("CAFE_TEST_EMPTY_KEY", "")
	if got := getEnv("CAFE_TEST_EMPTY_KEY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv for empty key = %q, want %q", got, "fallback")
	}
}
