package config

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"go-smf/midi"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Document.PPQN != 120 || cfg.Document.MaxTracks != 16 || cfg.Live.SettleMillis != 100 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Document.TextEncoding = "shift_jis"
	cfg.AddInput(InputConfig{PortName: "Keys", AutoConnect: true})
	cfg.AddInput(InputConfig{PortName: "Pads"})
	cfg.AddInput(InputConfig{PortName: "Pads", AutoConnect: true})
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Document.TextEncoding != "shift_jis" || len(got.Live.Inputs) != 2 {
		t.Errorf("loaded %+v", got)
	}
	if auto := got.AutoConnectInputs(); len(auto) != 2 || auto[0] != "Keys" || auto[1] != "Pads" {
		t.Errorf("auto = %v", auto)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"document":{"ppqn":480}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Document.PPQN != 480 || cfg.Live.ReadTimeoutMillis != 250 || cfg.Document.Format != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	for name, body := range map[string]string{
		"json":     `{"document":`,
		"encoding": `{"document":{"textEncoding":"ebcdic"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			os.WriteFile(path, []byte(body), 0644)
			if _, err := LoadFrom(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTextEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8"} {
		if enc, err := TextEncoding(name); enc != nil || err != nil {
			t.Errorf("%q = %v, %v", name, enc, err)
		}
	}
	for _, name := range []string{"shift_jis", "latin1", "windows-1252", "cp1252"} {
		if enc, err := TextEncoding(name); enc == nil || err != nil {
			t.Errorf("%q = %v, %v", name, enc, err)
		}
	}
	if enc, _ := TextEncoding("Shift_JIS"); enc != japanese.ShiftJIS {
		t.Error("shift_jis not mapped to japanese.ShiftJIS")
	}
}

func TestNewDocument(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Document.PPQN = 96
	cfg.Document.Format = 0
	cfg.Document.MaxTracks = 2
	d, err := cfg.NewDocument()
	if err != nil {
		t.Fatal(err)
	}
	if d.PPQN() != 96 || d.Format() != 0 {
		t.Errorf("ppqn %d format %d", d.PPQN(), d.Format())
	}
	if _, err := d.InsertEvent(2, 0, midi.Text("x")); err == nil {
		t.Error("track limit not applied")
	}
}

func TestListenerOptions(t *testing.T) {
	cfg := DefaultConfig()
	if n := len(cfg.ListenerOptions()); n != 2 {
		t.Errorf("%d options", n)
	}
	if n := len(cfg.ManagerOptions()); n != 3 {
		t.Errorf("%d manager options", n)
	}
}
