package feed

import (
	"math/rand"

	"github.com/matheuskafuri/techmood/internal/article"
)

// Bucket splits articles into those with and without an image, keeps at most
// half of each and interleaves them chunk by chunk, image chunk first. Order
// inside each bucket is preserved. half <= 0 keeps everything.
func Bucket(articles []article.Article, half, chunk int) []article.Article {
	var images, texts []article.Article
	for _, a := range articles {
		if a.HasImage() {
			images = append(images, a)
		} else {
			texts = append(texts, a)
		}
	}
	if half > 0 {
		images = capLen(images, half)
		texts = capLen(texts, half)
	}
	return Interleave(images, texts, chunk)
}

// Interleave merges two sequences by round-robin chunks of the given size.
// Once one side runs out the rest of the other is appended in order.
func Interleave(a, b []article.Article, chunk int) []article.Article {
	if chunk < 1 {
		chunk = 1
	}
	out := make([]article.Article, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i += chunk {
		out = append(out, a[min(i, len(a)):min(i+chunk, len(a))]...)
		out = append(out, b[min(i, len(b)):min(i+chunk, len(b))]...)
	}
	return out
}

// Shuffle returns a shuffled copy of articles.
func Shuffle(r *rand.Rand, articles []article.Article) []article.Article {
	out := make([]article.Article, len(articles))
	copy(out, articles)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func capLen(s []article.Article, n int) []article.Article {
	if len(s) > n {
		return s[:n]
	}
	return s
}
