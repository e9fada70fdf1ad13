// Copyright (c) 2026 IR Cloner Team
// IR Cloner - infrared remote code capture tool
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the source tree. It reports
// keys used in code but missing from a locale, keys no code uses, and
// messages whose fmt verbs differ from the primary locale, since i18n.T
// formats translated text with the caller's arguments.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	keyRe  = regexp.MustCompile(`i18n\.T\("([^"]+)"|"((?:app|menu|remote|keys|serial|debug|error|warning|config)\.[a-z_]+)"`)
	verbRe = regexp.MustCompile(`%[-+# 0]*\d*(?:\.\d+)?[a-zA-Z]`)
)

// report collects the findings of one lint run.
type report struct {
	Used       int
	Missing    map[string][]string // locale file -> keys
	Orphaned   []string
	VerbErrors []string
}

func (r report) failed() bool {
	return len(r.Missing) > 0 || len(r.VerbErrors) > 0
}

func main() {
	r, err := lint(projectRoot, localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, dir string) (report, error) {
	r := report{Missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scanning sources: %w", err)
	}
	r.Used = len(used)

	primary, err := loadLocale(filepath.Join(dir, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("loading %s: %w", primaryLocale, err)
	}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)
	for key := range used {
		if _, ok := primary[key]; !ok {
			r.Missing[primaryLocale] = append(r.Missing[primaryLocale], key)
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		msgs, err := loadLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", name, err)
		}
		for key, want := range primary {
			got, ok := msgs[key]
			if !ok {
				r.Missing[name] = append(r.Missing[name], key)
				continue
			}
			if !sameVerbs(want, got) {
				r.VerbErrors = append(r.VerbErrors, fmt.Sprintf("%s: %s", name, key))
			}
		}
	}
	for _, keys := range r.Missing {
		sort.Strings(keys)
	}
	sort.Strings(r.VerbErrors)
	return r, nil
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "%d translation keys used in source\n", r.Used)
	files := make([]string, 0, len(r.Missing))
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		for _, k := range r.Missing[f] {
			fmt.Fprintf(w, "missing  %s: %s\n", f, k)
		}
	}
	for _, e := range r.VerbErrors {
		fmt.Fprintf(w, "verbs    %s\n", e)
	}
	for _, k := range r.Orphaned {
		fmt.Fprintf(w, "orphaned %s\n", k)
	}
	if !r.failed() && len(r.Orphaned) == 0 {
		fmt.Fprintln(w, "all locale files are consistent")
	}
}

// findUsedKeys scans non-test .go files for translation keys.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyRe.FindAllStringSubmatch(string(content), -1) {
			if m[1] != "" {
				keys[m[1]] = struct{}{}
			} else if m[2] != "" {
				keys[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a flat locale file into key -> message.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]string
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// sameVerbs reports whether both messages use the same fmt verbs in order.
func sameVerbs(a, b string) bool {
	va, vb := verbRe.FindAllString(a, -1), verbRe.FindAllString(b, -1)
	if len(va) != len(vb) {
		return false
	}
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}
