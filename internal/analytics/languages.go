package analytics

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/octolens/octolens/internal/domain"
)

// languageColors matches GitHub's language colors for common languages.
var languageColors = map[string]string{
	"TypeScript": "#3178c6",
	"JavaScript": "#f7df1e",
	"Python":     "#3776ab",
	"Go":         "#00add8",
	"Rust":       "#dea584",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Ruby":       "#701516",
	"PHP":        "#4F5D95",
	"Swift":      "#ffac45",
	"Kotlin":     "#A97BFF",
	"Dart":       "#00B4AB",
	"Scala":      "#c22d40",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Vue":        "#41b883",
	"React":      "#61dafb",
}

// colorFor returns the display color for a language. Names outside the
// preset table get a color folded from an FNV-1a hash of the name, so the
// same name yields the same color on every run and platform.
func colorFor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("#%06x", h.Sum32()&0xffffff)
}

type langAccum struct {
	bytes int64
	repos int
}

// AggregateLanguages merges per-repository byte-count maps into a ranked,
// percentage-weighted, colored distribution. Repositories are walked in the
// order they arrived from upstream and each repository's languages in name
// order, so ties keep a reproducible first-seen order.
func AggregateLanguages(repos []domain.Repository, byRepo map[string]domain.LanguageBytes) []domain.LanguageDatum {
	accum := make(map[string]*langAccum)
	var order []string

	for _, repo := range repos {
		langs, ok := byRepo[repo.Name]
		if !ok {
			continue
		}

		names := make([]string, 0, len(langs))
		for name := range langs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			a, seen := accum[name]
			if !seen {
				a = &langAccum{}
				accum[name] = a
				order = append(order, name)
			}
			a.bytes += langs[name]
			a.repos++
		}
	}

	var totalBytes int64
	for _, a := range accum {
		totalBytes += a.bytes
	}

	out := make([]domain.LanguageDatum, 0, len(order))
	for _, name := range order {
		a := accum[name]
		var pct float64
		if totalBytes > 0 {
			pct = float64(a.bytes) / float64(totalBytes) * 100
		}
		out = append(out, domain.LanguageDatum{
			Name:       name,
			Bytes:      a.bytes,
			Repos:      a.repos,
			Percentage: pct,
			Color:      colorFor(name),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bytes > out[j].Bytes
	})
	return out
}
