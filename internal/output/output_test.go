package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/model"
	"gopkg.in/yaml.v3"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = old })
	return &buf
}

func sampleLayout() model.Layout {
	return model.Layout{
		TS:      1707500000,
		Focused: 0x400001,
		Containers: []model.Container{
			{
				Window:  0x400001,
				Bounds:  [4]int{0, 0, 800, 600},
				Border:  1,
				Focused: true,
				Clients: []model.Client{{Window: 0x600001, Title: "xterm", Active: true}},
			},
		},
	}
}

func TestPrintYAML(t *testing.T) {
	buf := capture(t)
	if err := PrintYAML(sampleLayout()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded model.Layout
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Focused != 0x400001 || len(decoded.Containers) != 1 {
		t.Errorf("decoded: %+v", decoded)
	}
	if decoded.Containers[0].Clients[0].Title != "xterm" {
		t.Errorf("title: got %q", decoded.Containers[0].Clients[0].Title)
	}
}

func TestPrint_Format(t *testing.T) {
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = oldFormat, oldPretty }()

	buf := capture(t)
	OutputFormat = FormatJSON
	if err := Print(BindingsResult{Bindings: []Binding{{Keys: "alt+j", Action: "split-horizontal", Context: "root"}}}); err != nil {
		t.Fatal(err)
	}
	want := `{"bindings":[{"keys":"alt+j","action":"split-horizontal","context":"root"}]}` + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	OutputFormat = "xml"
	if err := Print(struct{}{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"agent", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBindingsResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(BindingsResult{Bindings: []Binding{{Keys: "Return", Action: "spawn", Context: "container"}}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["config"]; ok {
		t.Error("empty config path should be omitted")
	}
	if strings.Contains(string(data), "command") {
		t.Errorf("empty command should be omitted:\n%s", data)
	}
}

func TestNewBindingsResult(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings = append(cfg.Bindings, config.Binding{Keys: "alt+b", Action: config.ActionSpawn, Command: "firefox", Context: config.ContextRoot})
	got := NewBindingsResult("/etc/ifwm.yaml", cfg)
	if got.Config != "/etc/ifwm.yaml" || len(got.Bindings) != 4 {
		t.Fatalf("got %+v", got)
	}
	if got.Bindings[0].Context != config.ContextRoot || got.Bindings[0].Command != "" {
		t.Errorf("split binding: %+v", got.Bindings[0])
	}
	if got.Bindings[2].Command != "xterm" || got.Bindings[2].Context != config.ContextContainer {
		t.Errorf("spawn should fall back to the terminal: %+v", got.Bindings[2])
	}
	if got.Bindings[3].Command != "firefox" {
		t.Errorf("explicit command: %+v", got.Bindings[3])
	}
}
