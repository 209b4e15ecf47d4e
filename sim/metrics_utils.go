// sim/metrics_utils.go
package sim

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of data using linear
// interpolation between closest ranks. data need not be sorted.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	for i, v := range data {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return sorted[n-1]
	}
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	return sorted[lowerIdx] + (sorted[upperIdx]-sorted[lowerIdx])*(rank-float64(lowerIdx))
}

// CalculateMean is a util function that calculates the mean of a data list
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// SaveQueueLengths writes the per-day queue series as "day,length" lines.
func (m *Metrics) SaveQueueLengths(fileName string) (err error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fileName, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := fmt.Fprintln(writer, "day,queue_length"); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}
	for i, length := range m.QueueLengths {
		if _, err := fmt.Fprintf(writer, "%d,%d\n", i+1, length); err != nil {
			return fmt.Errorf("writing %s: %w", fileName, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", fileName, err)
	}

	logrus.Debugf("Successfully wrote %d queue samples to '%s'", len(m.QueueLengths), fileName)
	return nil
}
