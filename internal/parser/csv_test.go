package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/tweetsift-cli/internal/dataset"
	"github.com/KaramelBytes/tweetsift-cli/internal/parser"
)

func TestLoadFileCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tweets_dataset.csv")
	content := "\ufeffUsername,Text,Biased\n" +
		"alice,\"I LOVE the Sun!!\",1\n" +
		"bob,hi,0\n" +
		"carol,\"multi\nline\",NaN\n" +
		"dave,short\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := parser.LoadFile(p, parser.DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", tbl.Len())
	}
	if got := strings.Join(tbl.Columns(), "|"); got != "Username|Text|Biased" {
		t.Fatalf("unexpected header %q", got)
	}
	if c, _ := tbl.At(2, "Text"); c.Value != "multi\nline" {
		t.Fatalf("expected quoted newline preserved, got %q", c.Value)
	}
	if c, _ := tbl.At(2, "Biased"); c.Valid {
		t.Fatalf("expected NaN label to be missing")
	}
	if c, _ := tbl.At(3, "Biased"); c.Valid {
		t.Fatalf("expected padded cell to be missing")
	}
}

func TestLoadFileSemicolon(t *testing.T) {
	p := filepath.Join(t.TempDir(), "t.csv")
	if err := os.WriteFile(p, []byte("Text;Biased\na,b;1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opt := parser.DefaultOptions()
	opt.Delimiter = ';'
	tbl, err := parser.LoadFile(p, opt)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c, _ := tbl.At(0, "Text"); c.Value != "a,b" {
		t.Fatalf("unexpected text %q", c.Value)
	}
}

func TestLoadFileConfigErrors(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "data.xlsx")
	if err := os.WriteFile(xlsx, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cases := map[string]string{
		"empty":       "",
		"unsupported": xlsx,
		"missing":     filepath.Join(dir, "absent.csv"),
	}
	for name, path := range cases {
		_, err := parser.LoadFile(path, parser.DefaultOptions())
		if !dataset.IsConfigError(err) {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
	_, err := parser.LoadFile(xlsx, parser.DefaultOptions())
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := parser.ReadCSV(strings.NewReader(""), parser.DefaultOptions())
	if !errors.Is(err, dataset.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
	tbl, err := parser.ReadCSV(strings.NewReader("Text,Biased\n"), parser.DefaultOptions())
	if err != nil {
		t.Fatalf("header only: %v", err)
	}
	if tbl.Len() != 0 {
		t.Fatalf("expected no rows")
	}
}

func TestReadCSVRejectsWideRow(t *testing.T) {
	src := "Text,Biased\nfine,1\nhello, world,0\n"
	_, err := parser.ReadCSV(strings.NewReader(src), parser.DefaultOptions())
	if !errors.Is(err, parser.ErrTooManyFields) {
		t.Fatalf("expected ErrTooManyFields, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 3: expected 2 fields, saw 3") {
		t.Fatalf("error should name the line: %v", err)
	}
}
