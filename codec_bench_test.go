package tagjson

import (
	"fmt"
	"testing"
	"time"
)

func benchmarkDocument(n int) map[string]any {
	doc := make(map[string]any, n)
	for i := range n {
		doc[fmt.Sprintf("k%d", i)] = map[string]any{
			"at":    time.UnixMilli(int64(i)).UTC(),
			"note":  "#!Date[1]",
			"plain": "hello",
			"list":  []any{1, 2, MustRegExp(`\d+`, "g")},
		}
	}
	return doc
}

// BenchmarkStringify measures tagging and escaping of a mixed document
func BenchmarkStringify(b *testing.B) {
	codec, _ := New()
	doc := benchmarkDocument(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Stringify(doc); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParse measures reviving the same document
func BenchmarkParse(b *testing.B) {
	codec, _ := New()
	text, err := codec.Stringify(benchmarkDocument(100))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Parse(text); err != nil {
			b.Fatal(err)
		}
	}
}
