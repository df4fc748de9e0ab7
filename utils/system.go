package utils

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// CountNonFinite counts NaN and Inf entries.
func CountNonFinite(A any) (count int) {
	switch v := A.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			count++
		}
	case complex128:
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			count++
		}
	case []float64:
		for _, f := range v {
			count += CountNonFinite(f)
		}
	case []complex128:
		for _, c := range v {
			count += CountNonFinite(c)
		}
	case *Array3[float64]:
		return CountNonFinite(v.Data)
	case *Array3[complex128]:
		return CountNonFinite(v.Data)
	}
	return
}
