package viewer

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func fakeLookPath(available map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if path, ok := available[name]; ok {
			return path, nil
		}
		return "", errors.New("not found")
	}
}

func TestDetectOpener(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		available map[string]string
		want      []string
	}{
		{
			name:      "linux xdg-open",
			goos:      "linux",
			available: map[string]string{"xdg-open": "/usr/bin/xdg-open", "gio": "/usr/bin/gio"},
			want:      []string{"/usr/bin/xdg-open"},
		},
		{
			name:      "linux gio fallback",
			goos:      "linux",
			available: map[string]string{"gio": "/usr/bin/gio"},
			want:      []string{"/usr/bin/gio", "open"},
		},
		{
			name:      "darwin open",
			goos:      "darwin",
			available: map[string]string{"open": "/usr/bin/open"},
			want:      []string{"/usr/bin/open"},
		},
		{
			name:      "windows rundll32",
			goos:      "windows",
			available: map[string]string{"rundll32": `C:\Windows\System32\rundll32.exe`, "cmd": `C:\Windows\System32\cmd.exe`},
			want:      []string{`C:\Windows\System32\rundll32.exe`, "url.dll,FileProtocolHandler"},
		},
		{
			name:      "nothing available",
			goos:      "linux",
			available: map[string]string{},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := detectOpenerInternal(tt.goos, fakeLookPath(tt.available))
			if ok != (tt.want != nil) {
				t.Fatalf("ok = %v, want %v", ok, tt.want != nil)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("command = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenAppendsURL(t *testing.T) {
	var gotName string
	var gotArgs []string
	o := NewWithCommand([]string{"/usr/bin/gio", "open"}, func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := o.Open(context.Background(), "http://localhost:8000/api/model?index=3"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotName != "/usr/bin/gio" {
		t.Fatalf("name = %q", gotName)
	}
	want := []string{"open", "http://localhost:8000/api/model?index=3"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
}

func TestOpenWithoutCommand(t *testing.T) {
	o := NewWithCommand(nil, nil)
	if o.Available() {
		t.Fatal("expected unavailable opener")
	}
	if err := o.Open(context.Background(), "x"); !errors.Is(err, ErrNoOpener) {
		t.Fatalf("expected ErrNoOpener, got %v", err)
	}
}
