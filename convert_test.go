package main

import (
	"archive/zip"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exlskills/storyboardutil/pptx"
)

const lessonScript = "## Slide: Welcome\nText:\nHello there\nNarration:\nWelcome aboard\n## Quiz: Single Choice\nQuestion: 2+2?\nA: 3\nB: 4\nAnswer: B\n"

func writeSource(t *testing.T, dir, name, body string) string {
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConversionToDeck(t *testing.T) {
	dir, err := ioutil.TempDir("", "storyboard-convert")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	src := writeSource(t, dir, "intro lesson.txt", lessonScript)
	job := conversion{
		from:     "file://" + src,
		fromKey:  "script",
		to:       "file://" + filepath.Join(dir, "out", "intro.pptx"),
		toFormat: "pptx",
		opts:     optionsF(""),
	}
	slides, quizzes, err := job.run()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if slides != 1 || quizzes != 1 {
		t.Fatalf("unexpected counts %d/%d", slides, quizzes)
	}
	data, err := ioutil.ReadFile(filepath.Join(dir, "out", "intro.pptx"))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := pptx.Inspect(data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if got := sum.Slides[0].Shape("Title").Texts()[0]; got != "intro lesson" {
		t.Fatalf("expected title from file name, got %q", got)
	}

	if _, _, err := job.run(); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected existing destination error, got %v", err)
	}
	job.force = true
	if _, _, err := job.run(); err != nil {
		t.Fatalf("forced convert: %v", err)
	}
	if err := verifyDeck(job.to); err != nil {
		t.Fatalf("verify deck: %v", err)
	}
	if err := verifyDeck("file://" + src); err == nil {
		t.Fatalf("expected a script to fail deck verification")
	}
}

func TestRunBatch(t *testing.T) {
	dir, err := ioutil.TempDir("", "storyboard-batch")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	files := []string{
		writeSource(t, dir, "one.txt", lessonScript),
		writeSource(t, dir, "two.csv", "Intro,Hello,say hi\n"),
		writeSource(t, dir, "three.yaml", "- type: slide\n  title: Hi\n  text: [hello]\n"),
		filepath.Join(dir, "missing.txt"),
	}
	out := filepath.Join(dir, "out")
	if failed := runBatch(files, out, zipFormat, 2, false, optionsF("")); failed != 1 {
		t.Fatalf("expected one failure, got %d", failed)
	}
	for _, name := range []string{"one.zip", "two.zip", "three.zip"} {
		zr, err := zip.OpenReader(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		if len(zr.File) != 2 {
			t.Fatalf("%s: expected 2 entries, got %d", name, len(zr.File))
		}
		zr.Close()
	}
}

func TestSourceKeyAndAliases(t *testing.T) {
	cases := map[string]string{
		"a.md":   "script",
		"a.txt":  "script",
		"a.XLSX": "table",
		"a.tsv":  "table",
		"a.yml":  "blocks",
		"a.json": "blocks",
	}
	for in, want := range cases {
		if got := sourceKey(in); got != want {
			t.Errorf("sourceKey(%q) = %q, want %q", in, got, want)
		}
	}
	if resolveKey(" CSV ") != "table" || resolveKey("pdf") != "pdf" {
		t.Fatalf("unexpected alias resolution")
	}
}

func TestRunBatchRejectsSharedDestination(t *testing.T) {
	dir, err := ioutil.TempDir("", "storyboard-batch-dup")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	files := []string{
		writeSource(t, dir, "a.md", lessonScript),
		writeSource(t, dir, "a.csv", "QUIZ: Other,\"Question: Q\nA: x\nAnswer: A\",\n"),
	}
	out := filepath.Join(dir, "out")
	if failed := runBatch(files, out, "table", 2, true, optionsF("")); failed != 1 {
		t.Fatalf("expected the second file to be rejected, got %d failures", failed)
	}
	data, err := ioutil.ReadFile(filepath.Join(out, "a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2+2?") || strings.Contains(string(data), "Other") {
		t.Fatalf("expected the first file's quiz table, got %q", data)
	}
}
