package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `live: true
join: broad
fields: [body, Title, h2]
top: 10
fetch_timeout: 3s
format: JSON
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if !cfg.Live {
		t.Error("Live = false, want true")
	}
	if cfg.Join != JoinBroad {
		t.Errorf("Join = %s, want broad", cfg.Join)
	}
	want := []FieldName{FieldTitle, FieldH2, FieldBody}
	if len(cfg.Fields) != len(want) {
		t.Fatalf("Fields = %v, want %v", cfg.Fields, want)
	}
	for i := range want {
		if cfg.Fields[i] != want[i] {
			t.Errorf("Fields[%d] = %s, want %s", i, cfg.Fields[i], want[i])
		}
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	// untouched keys keep their defaults
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
}

func TestLoadConfigBadJoin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("join: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for unknown join mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*RunConfig) {}},
		{name: "unknown field", mutate: func(c *RunConfig) { c.Fields = []FieldName{"footer"} }, wantErr: true},
		{name: "zero workers", mutate: func(c *RunConfig) { c.WorkerCount = 0 }, wantErr: true},
		{name: "negative top", mutate: func(c *RunConfig) { c.Top = -1 }, wantErr: true},
		{name: "unknown format", mutate: func(c *RunConfig) { c.Format = "xlsx" }, wantErr: true},
		{name: "sqlite to stdout", mutate: func(c *RunConfig) { c.Format = FormatSQLite }, wantErr: true},
		{name: "sqlite to file", mutate: func(c *RunConfig) { c.Format = FormatSQLite; c.Output = "out.db" }},
		{name: "empty fields means all", mutate: func(c *RunConfig) { c.Fields = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseJoinMode(t *testing.T) {
	tests := []struct {
		in      string
		want    JoinMode
		wantErr bool
	}{
		{in: "", want: JoinPerURL},
		{in: "per-url", want: JoinPerURL},
		{in: "BROAD", want: JoinBroad},
		{in: "nope", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseJoinMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseJoinMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseJoinMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFieldsSegments(t *testing.T) {
	f := NewFields()
	if len(f) != len(AllFields) {
		t.Fatalf("NewFields() has %d slots, want %d", len(f), len(AllFields))
	}
	f[FieldH2] = "first" + SegmentSeparator + SegmentSeparator + "second"
	got := f.Segments(FieldH2)
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("Segments() = %q, want [first second]", got)
	}
	if segs := f.Segments(FieldTitle); segs != nil {
		t.Errorf("Segments(empty) = %q, want nil", segs)
	}
}
