// Command smoketest runs the tokenizer over a directory of .txt files and
// validates structural invariants on real-world data: offset correctness,
// token ordering, and grapheme cluster boundaries. It prints a token type
// histogram, the script family distribution, and flags files whose entity
// density is far above the corpus median.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/socialtok/socialtok/script"
	"github.com/socialtok/socialtok/tokenizer"
)

const (
	chunkSize      = 4 << 20 // 4 MB per read chunk
	maxWorkers     = 4
	expectedArgs   = 2
	bytesToMBShift = 20
)

type fileDensity struct {
	path     string
	entities int
	tokens   int
	density  float64
}

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	totalBytes      int64
	totalTokens     int64
	invariantOK     int
	invariantFail   int
	entityOutliers  int
	tokenTypeCounts map[tokenizer.TokenType]int
	familyCounts    map[script.Family]int
	fileDensities   []fileDensity
}

type fileState struct {
	path            string
	tokenCounts     map[tokenizer.TokenType]int
	familyCounts    map[script.Family]int
	totalBytes      int64
	totalTokens     int
	entityTokens    int
	invariantFailed bool
	invariantLogged bool
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	dirPath := os.Args[1]
	stats := &Stats{
		tokenTypeCounts: make(map[tokenizer.TokenType]int),
		familyCounts:    make(map[script.Family]int),
	}

	var filePaths []string
	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, path := range filePaths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(p string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			processFile(p, stats)
		}(path)
	}

	wg.Wait()

	flagEntityOutliers(stats)

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
}

func processFile(path string, stats *Stats) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error stat %s: %v\n", path, err)
		return
	}
	fileSize := info.Size()
	fmt.Fprintf(os.Stderr, "START %s (%d MB)\n", path, fileSize>>bytesToMBShift)
	fileStart := time.Now()

	state := &fileState{
		path:         path,
		tokenCounts:  make(map[tokenizer.TokenType]int),
		familyCounts: make(map[script.Family]int),
	}

	tk := tokenizer.NewDefault()

	buf := make([]byte, chunkSize)
	var leftover []byte

	for {
		n, err := f.Read(buf)
		if n > 0 {
			leftover = append(leftover, buf[:n]...)
			chunk := leftover

			if err == nil {
				if idx := bytes.LastIndexByte(chunk, '\n'); idx > 0 {
					leftover = make([]byte, len(chunk)-idx-1)
					copy(leftover, chunk[idx+1:])
					chunk = chunk[:idx+1]
				} else {
					leftover = chunk
					continue
				}
			} else {
				leftover = nil
			}

			state.processChunk(tk, chunk)
		}

		if err != nil {
			break
		}
	}

	if len(leftover) > 0 {
		state.processChunk(tk, leftover)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d MB processed)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond), state.totalBytes>>bytesToMBShift)

	mergeFileState(state, stats)
}

func (fs *fileState) processChunk(tk *tokenizer.BasicTokenizer, chunk []byte) {
	text := string(chunk)
	fs.totalBytes += int64(len(chunk))

	tokens := tk.Tokenize(text)
	fs.totalTokens += len(tokens)

	for _, tok := range tokens {
		fs.tokenCounts[tok.Type]++
		if tok.Type.Entity() {
			fs.entityTokens++
		}
		if tok.Type == tokenizer.Word {
			fs.familyCounts[tok.Script.Family()]++
		}
	}

	if !fs.invariantFailed {
		if reason := checkInvariants(norm.NFC.String(text), tokens); reason != "" {
			fs.invariantFailed = true
			if !fs.invariantLogged {
				fmt.Fprintf(os.Stderr, "INVARIANT_FAIL: %s: %s\n", fs.path, reason)
				fs.invariantLogged = true
			}
		}
	}
}

// checkInvariants validates a token sequence against the normalized chunk:
// offsets must be ordered, must address the token's surface text, and must
// fall on grapheme cluster boundaries. Returns a description of the first
// violation, or "".
func checkInvariants(text string, tokens []tokenizer.Token) string {
	runes := []rune(text)
	bounds := map[int]bool{0: true}
	off := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		off += len(gr.Runes())
		bounds[off] = true
	}

	prevEnd := 0
	for i, tok := range tokens {
		if tok.Start < prevEnd {
			return fmt.Sprintf("token %d overlaps previous (start %d < end %d)", i, tok.Start, prevEnd)
		}
		if tok.Start > tok.End || tok.End > len(runes) {
			return fmt.Sprintf("token %d offsets out of range [%d:%d]", i, tok.Start, tok.End)
		}
		if got := string(runes[tok.Start:tok.End]); got != tok.Text {
			return fmt.Sprintf("token %d text mismatch at [%d:%d]: %q != %q", i, tok.Start, tok.End, got, tok.Text)
		}
		if !bounds[tok.Start] || !bounds[tok.End] {
			return fmt.Sprintf("token %d boundary inside a grapheme cluster [%d:%d]", i, tok.Start, tok.End)
		}
		prevEnd = tok.End
	}
	return ""
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.totalBytes
	stats.totalTokens += int64(fs.totalTokens)

	if fs.invariantFailed {
		stats.invariantFail++
	} else {
		stats.invariantOK++
	}

	for tokenType, count := range fs.tokenCounts {
		stats.tokenTypeCounts[tokenType] += count
	}
	for family, count := range fs.familyCounts {
		stats.familyCounts[family] += count
	}

	var density float64
	if fs.totalTokens > 0 {
		density = float64(fs.entityTokens) / float64(fs.totalTokens)
	}
	stats.fileDensities = append(stats.fileDensities, fileDensity{
		path:     fs.path,
		entities: fs.entityTokens,
		tokens:   fs.totalTokens,
		density:  density,
	})
}

// flagEntityOutliers computes the median entity density across all files and
// flags any file whose density exceeds 3x the median.
func flagEntityOutliers(stats *Stats) {
	if len(stats.fileDensities) == 0 {
		return
	}

	densities := make([]float64, len(stats.fileDensities))
	for i, fd := range stats.fileDensities {
		densities[i] = fd.density
	}
	med := computeMedian(densities)

	for _, fd := range stats.fileDensities {
		if med > 0 && fd.density > 3*med {
			stats.entityOutliers++
			fmt.Fprintf(os.Stderr, "ENTITY_OUTLIER: %s: %d entities / %d tokens (density %.4f, median %.4f)\n",
				fd.path, fd.entities, fd.tokens, fd.density, med)
		}
	}
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func printStats(stats *Stats) {
	fmt.Printf("Files scanned:      %d\n", stats.filesScanned)
	fmt.Printf("Total size:         %d MB\n", stats.totalBytes>>bytesToMBShift)
	fmt.Printf("Total tokens:       %d\n", stats.totalTokens)
	fmt.Printf("Invariants OK:      %d\n", stats.invariantOK)
	fmt.Printf("Invariants failed:  %d\n", stats.invariantFail)
	fmt.Printf("Entity outliers:    %d\n", stats.entityOutliers)

	fmt.Println("\nToken type histogram:")
	types := make([]tokenizer.TokenType, 0, len(stats.tokenTypeCounts))
	for tokenType := range stats.tokenTypeCounts {
		types = append(types, tokenType)
	}
	sort.Slice(types, func(i, j int) bool {
		return stats.tokenTypeCounts[types[i]] > stats.tokenTypeCounts[types[j]]
	})
	for _, tokenType := range types {
		fmt.Printf("  %-12s %d\n", tokenType, stats.tokenTypeCounts[tokenType])
	}

	fmt.Println("\nWord token script families:")
	families := make([]script.Family, 0, len(stats.familyCounts))
	for family := range stats.familyCounts {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool {
		return stats.familyCounts[families[i]] > stats.familyCounts[families[j]]
	})
	for _, family := range families {
		fmt.Printf("  %-12s %d\n", family, stats.familyCounts[family])
	}
}
