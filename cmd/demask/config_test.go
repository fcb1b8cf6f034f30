package main

import "testing"

func TestParseConfig(t *testing.T) {
	data := []byte(`
vocab: 128
seq_len: 32
steps: 12
schedule: linear
temperature: 0.7
filter_thres: 0.9
seed: 5
server_address: 0.0.0.0:9090
log_level: debug
`)
	cfg := parseConfig(data)
	if cfg.Vocab == nil || *cfg.Vocab != 128 {
		t.Fatalf("vocab = %v", cfg.Vocab)
	}
	if cfg.SeqLen == nil || *cfg.SeqLen != 32 {
		t.Fatalf("seq_len = %v", cfg.SeqLen)
	}
	if cfg.Steps == nil || *cfg.Steps != 12 {
		t.Fatalf("steps = %v", cfg.Steps)
	}
	if cfg.Schedule != "linear" {
		t.Fatalf("schedule = %q", cfg.Schedule)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Fatalf("temperature = %v", cfg.Temperature)
	}
	if cfg.FilterThres == nil || *cfg.FilterThres != 0.9 {
		t.Fatalf("filter_thres = %v", cfg.FilterThres)
	}
	if cfg.ServerAddress != "0.0.0.0:9090" {
		t.Fatalf("server_address = %q", cfg.ServerAddress)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
	// Unset fields stay nil so flags keep their defaults.
	if cfg.Hidden != nil {
		t.Fatalf("hidden should be unset, got %v", *cfg.Hidden)
	}
}

func TestParseConfigInvalidYAML(t *testing.T) {
	cfg := parseConfig([]byte("vocab: [not a number"))
	if cfg.Vocab != nil || cfg.Schedule != "" {
		t.Fatal("invalid YAML must yield a zero config")
	}
}

func TestScheduleByName(t *testing.T) {
	if _, err := scheduleByName("cosine"); err != nil {
		t.Fatalf("cosine: %v", err)
	}
	if _, err := scheduleByName("linear"); err != nil {
		t.Fatalf("linear: %v", err)
	}
	if _, err := scheduleByName("quadratic"); err == nil {
		t.Fatal("expected error for unknown schedule")
	}
}
