package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/exlskills/storyboardutil/assets"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pptx"
	"github.com/exlskills/storyboardutil/service"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
)

const zipFormat = "zip"

// conversion is one source file turned into one destination file.
type conversion struct {
	from     string
	fromKey  string
	to       string
	toFormat string
	force    bool
	opts     extfmt.Options
}

func (c conversion) run() (slides, quizzes int, err error) {
	dest, err := assets.GetAbsolutePathFromFileURI(c.to)
	if err != nil {
		return 0, 0, err
	}
	if _, err := os.Stat(dest); err == nil && !c.force {
		return 0, 0, errors.Errorf("destination %s already exists, use --force to overwrite", dest)
	}
	impl := extfmt.GetImplementation(c.fromKey)
	if impl == nil {
		return 0, 0, errors.Errorf("invalid format type: %s", c.fromKey)
	}
	blocks, err := importURI(impl, c.from)
	if err != nil {
		return 0, 0, err
	}
	slides, quizzes = ir.CountBlocks(blocks)
	if strings.TrimSpace(c.opts.Title) == "" {
		c.opts.Title = baseName(c.from)
	}
	var buf bytes.Buffer
	if c.toFormat == zipFormat {
		data, err := service.Bundle(context.Background(), service.SanitizeFilename(c.opts.Title), blocks, c.opts)
		if err != nil {
			return 0, 0, err
		}
		buf.Write(data)
	} else {
		to := extfmt.GetImplementation(resolveKey(c.toFormat))
		if to == nil {
			return 0, 0, errors.Errorf("invalid format type: %s", c.toFormat)
		}
		if err := to.Export(blocks, c.opts, &buf); err != nil {
			return 0, 0, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, 0, errors.Wrap(err, "unable to create destination directory")
	}
	if err := ioutil.WriteFile(dest, buf.Bytes(), 0644); err != nil {
		return 0, 0, errors.Wrap(err, "unable to write destination")
	}
	return slides, quizzes, nil
}

func importURI(impl extfmt.ExtFmt, uri string) ([]ir.Block, error) {
	path, err := assets.GetAbsolutePathFromFileURI(uri)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read source")
	}
	return impl.Import(extfmt.Source{Name: filepath.Base(path), Data: data})
}

func baseName(uri string) string {
	base := filepath.Base(strings.TrimPrefix(uri, "file://"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sourceKey picks the import format from a file extension.
func sourceKey(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".xlsx", ".xls":
		return "table"
	case ".yaml", ".yml", ".json":
		return "blocks"
	default:
		return "script"
	}
}

// runBatch converts every file into outDir with at most workers conversions in flight and
// returns the number of failures.
func runBatch(files []string, outDir, toFormat string, workers int, force bool, opts extfmt.Options) int {
	if workers < 1 {
		workers = 1
	}
	ext := toFormat
	if toFormat != zipFormat {
		ext = extfmt.GetImplementation(resolveKey(toFormat)).FileExtension()
	}
	swg := sizedwaitgroup.New(workers)
	var mu sync.Mutex
	failed := 0
	claimed := map[string]string{}
	for _, file := range files {
		src, err := assets.VerifyAndClean(file)
		if err != nil {
			Log.Errorf("Skipping %s: %s", file, err.Error())
			mu.Lock()
			failed++
			mu.Unlock()
			continue
		}
		name := service.SanitizeFilename(baseName(src))
		dest := filepath.Join(outDir, fmt.Sprintf("%s.%s", name, ext))
		if prev, ok := claimed[dest]; ok {
			Log.Errorf("Skipping %s: %s already writes %s", file, prev, dest)
			mu.Lock()
			failed++
			mu.Unlock()
			continue
		}
		claimed[dest] = file
		job := conversion{
			from:     src,
			fromKey:  sourceKey(src),
			to:       "file://" + dest,
			toFormat: toFormat,
			force:    force,
			opts:     opts,
		}
		job.opts.Title = baseName(src)
		swg.Add()
		go func(job conversion) {
			defer swg.Done()
			slides, quizzes, err := job.run()
			if err != nil {
				Log.Errorf("Converting %s failed with: %s", job.from, err.Error())
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			Log.Infof("Converted %s (%d slides, %d quizzes)", job.to, slides, quizzes)
		}(job)
	}
	swg.Wait()
	return failed
}

// verifyDeck reads back a generated presentation and prints its slides.
func verifyDeck(uri string) error {
	path, err := assets.GetAbsolutePathFromFileURI(uri)
	if err != nil {
		return err
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "unable to read deck")
	}
	sum, err := pptx.Inspect(data)
	if err != nil {
		return err
	}
	for _, s := range sum.Slides {
		fmt.Println(s.String())
	}
	Log.Infof("Successfully verified deck: %d slides", len(sum.Slides))
	return nil
}
