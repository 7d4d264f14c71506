package feed

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/matheuskafuri/techmood/internal/article"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeArticles(images, texts int) []article.Article {
	var out []article.Article
	for i := 0; i < images; i++ {
		out = append(out, article.Article{ID: fmt.Sprintf("i%d", i), ImageURL: "https://img/" + fmt.Sprint(i)})
	}
	for i := 0; i < texts; i++ {
		out = append(out, article.Article{ID: fmt.Sprintf("t%d", i)})
	}
	return out
}

func ids(arts []article.Article) []string {
	out := make([]string, len(arts))
	for i, a := range arts {
		out[i] = a.ID
	}
	return out
}

func TestBucketChunkOfOneAlternates(t *testing.T) {
	got := Bucket(makeArticles(3, 3), 6, 1)
	assert.Equal(t, []string{"i0", "t0", "i1", "t1", "i2", "t2"}, ids(got))
}

func TestBucketChunkOfFour(t *testing.T) {
	got := Bucket(makeArticles(12, 8), 12, 4)
	assert.Equal(t, []string{
		"i0", "i1", "i2", "i3", "t0", "t1", "t2", "t3",
		"i4", "i5", "i6", "i7", "t4", "t5", "t6", "t7",
		"i8", "i9", "i10", "i11",
	}, ids(got))
}

func TestBucketCapsEachSide(t *testing.T) {
	got := Bucket(makeArticles(20, 9), 6, 1)
	require.Len(t, got, 12)

	var images, texts int
	for _, a := range got {
		if a.HasImage() {
			images++
		} else {
			texts++
		}
	}
	assert.Equal(t, 6, images)
	assert.Equal(t, 6, texts)
}

func TestBucketExhaustedSideAppendsRest(t *testing.T) {
	got := Bucket(makeArticles(1, 4), 6, 1)
	assert.Equal(t, []string{"i0", "t0", "t1", "t2", "t3"}, ids(got))
}

func TestBucketMixedInputPreservesBucketOrder(t *testing.T) {
	in := []article.Article{
		{ID: "t0"}, {ID: "i0", ImageURL: "x"}, {ID: "t1"}, {ID: "i1", ImageURL: "x"}, {ID: "i2", ImageURL: "x"},
	}
	got := Bucket(in, 0, 2)
	assert.Equal(t, []string{"i0", "i1", "t0", "t1", "i2"}, ids(got))
}

// No run of same-bucket items may exceed the chunk size while both buckets
// still have items left.
func TestBucketRunLengthProperty(t *testing.T) {
	for _, chunk := range []int{1, 2, 4} {
		for images := 0; images <= 14; images++ {
			for texts := 0; texts <= 14; texts++ {
				got := Bucket(makeArticles(images, texts), 12, chunk)
				wantImages, wantTexts := min(images, 12), min(texts, 12)
				require.Len(t, got, wantImages+wantTexts)

				seenImages, seenTexts := 0, 0
				run := 0
				for i, a := range got {
					if i > 0 && a.HasImage() == got[i-1].HasImage() {
						run++
					} else {
						run = 1
					}
					bothLeft := seenImages < wantImages && seenTexts < wantTexts
					if bothLeft && run > chunk {
						t.Fatalf("chunk=%d images=%d texts=%d: run of %d at %d", chunk, images, texts, run, i)
					}
					if a.HasImage() {
						seenImages++
					} else {
						seenTexts++
					}
				}
			}
		}
	}
}

func TestShuffleKeepsElements(t *testing.T) {
	in := makeArticles(5, 5)
	got := Shuffle(rand.New(rand.NewSource(1)), in)
	assert.ElementsMatch(t, ids(in), ids(got))
	assert.Equal(t, "i0", in[0].ID, "input must not be reordered")
}
