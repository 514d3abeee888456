// Package boundary exposes a handle-based procedural surface: a
// process-wide request Loader and an integer-handle registry of Cache
// Emulators, meant to be called from a C-ABI shim that marshals
// buffers to and from a host process. The shim itself — the actual
// cgo or FFI boundary — is outside this package's scope; boundary only
// provides the Go-side operations it would call.
package boundary

import (
	"fmt"
	"log"

	"github.com/hopexn/cacheemu-go/emulator"
	"github.com/hopexn/cacheemu-go/trace"
)

// Verbose gates the per-handler startup log line InitCacheEmu prints
// ("Emu <handler>: active|passive mode."). Off by default so test runs
// stay silent.
var Verbose = false

var loader = trace.NewLoader()

var (
	handles    = make(map[int]emulator.Stepper)
	nextHandle = 0
)

// invalidHandle aborts with a diagnostic: an unregistered handle is a
// caller programming error, not a recoverable condition.
func invalidHandle(op string, handle int) {
	panic(fmt.Sprintf("boundary.%s: handle %d is not registered", op, handle))
}

func lookup(op string, handle int) emulator.Stepper {
	s, ok := handles[handle]
	if !ok {
		invalidHandle(op, handle)
	}
	return s
}

// LoadDataset appends ids/timestamps to the process-wide Loader.
func LoadDataset(ids, timestamps []int32) {
	loader.LoadDataset(ids, timestamps)
}

// SliceDatasetByTime partitions the process-wide Loader's requests
// into time-slices and returns the slice count.
func SliceDatasetByTime(tBegin, tEnd, tInterval int32) int {
	return loader.SliceByTime(tBegin, tEnd, tInterval)
}

// InitCacheEmu constructs a new emulator of the requested capacity and
// mode against the process-wide Loader, registers it, and returns its
// handle.
func InitCacheEmu(capacity int, passiveMode bool) int {
	handle := nextHandle
	nextHandle++

	var mode string
	var s emulator.Stepper
	if passiveMode {
		mode = "passive"
		s = emulator.NewPassive(capacity, loader)
	} else {
		mode = "active"
		s = emulator.NewActive(capacity, loader)
	}
	handles[handle] = s

	if Verbose {
		log.Printf("Emu %d: %s mode.", handle, mode)
	}

	return handle
}

func base(op string, handle int) *emulator.Emulator {
	switch e := lookup(op, handle).(type) {
	case *emulator.Active:
		return e.Emulator
	case *emulator.Passive:
		return e.Emulator
	default:
		invalidHandle(op, handle)
		return nil
	}
}

// Reset resets the emulator registered at handle.
func Reset(handle int) {
	switch e := lookup("Reset", handle).(type) {
	case *emulator.Active:
		e.Reset()
	case *emulator.Passive:
		e.Reset()
	}
}

// Step advances the emulator registered at handle by one step,
// following its configured mode.
func Step(handle int) emulator.Triple {
	return lookup("Step", handle).Step()
}

// GetCacheContents returns the cache slot array of the emulator
// registered at handle.
func GetCacheContents(handle int) []int32 {
	return base("GetCacheContents", handle).CacheContents()
}

// GetCandidates returns the candidate set emitted by the emulator's
// most recent Step.
func GetCandidates(handle int) []int32 {
	return base("GetCandidates", handle).Candidates()
}

// GetCandidateFrequencies returns the per-candidate hit counts emitted
// by the emulator's most recent Step.
func GetCandidateFrequencies(handle int) []float64 {
	return base("GetCandidateFrequencies", handle).CandidateFrequencies()
}

// GetStepElements returns the requests processed by the emulator's
// most recent Step.
func GetStepElements(handle int) []int32 {
	return base("GetStepElements", handle).StepElements()
}

// GetNumStepElements returns len(GetStepElements(handle)), letting a
// caller size its own buffer before copying the step elements out.
func GetNumStepElements(handle int) int {
	return base("GetNumStepElements", handle).NumStepElements()
}

// UpdateCache rewrites the emulator's cache occupancy to newContents.
func UpdateCache(handle int, newContents []int32) {
	base("UpdateCache", handle).UpdateCache(newContents)
}

// SetupTraditionalFeatureTypes installs any of LFU, LRU, and
// OGD-Optimal selected by the bool flags. The Id extractor has no flag
// here and stays reachable only through emulator.Emulator.UseIdFeature
// directly, since it carries no learned state worth toggling through
// this handle-based surface.
func SetupTraditionalFeatureTypes(handle int, useLFU, useLRU, useOGDOpt bool) {
	e := base("SetupTraditionalFeatureTypes", handle)
	if useLFU {
		e.UseLFUFeature()
	}
	if useLRU {
		e.UseLRUFeature()
	}
	if useOGDOpt {
		e.UseOGDOptimalFeature()
	}
}

// SetupSWLFUFeatureTypes installs one Sliding-Window LFU extractor per
// requested window length.
func SetupSWLFUFeatureTypes(handle int, windowLens []int) {
	e := base("SetupSWLFUFeatureTypes", handle)
	for _, w := range windowLens {
		e.UseSWLFUFeature(w)
	}
}

// GetFeatures returns the feature matrix for the given content ids,
// flattened in row-major order so callers can copy it into a flat
// buffer without needing to know the matrix's column width up front.
func GetFeatures(handle int, contentIDs []int32) []float64 {
	m := base("GetFeatures", handle).GetFeatures(contentIDs)
	rows, cols := m.Dims()
	out := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[r*cols+c] = m.At(r, c)
		}
	}
	return out
}

// Finished reports whether the emulator registered at handle has taken
// every slice of its loader. A passive emulator reports true as soon as
// its last slice is loaded, even while requests of that slice remain
// unprocessed in its residual.
func Finished(handle int) bool {
	return base("Finished", handle).Finished()
}

// GetMeanHitRate returns the emulator's lifetime hit rate.
func GetMeanHitRate(handle int) float64 {
	return base("GetMeanHitRate", handle).GetMeanHitRate()
}

// GetIEpisode returns the emulator's current episode index.
func GetIEpisode(handle int) int {
	return base("GetIEpisode", handle).GetIEpisode()
}

// OnEpisodeEnd closes out the current episode on the emulator
// registered at handle and returns that episode's hit rate.
func OnEpisodeEnd(handle int) float64 {
	return base("OnEpisodeEnd", handle).OnEpisodeEnd()
}

// FeatureDims returns the total feature width installed on the
// emulator registered at handle.
func FeatureDims(handle int) int {
	return base("FeatureDims", handle).FeatureDims()
}

// resetRegistry clears the handle table and process-wide loader; used
// only by tests to isolate package-level state between cases.
func resetRegistry() {
	loader = trace.NewLoader()
	handles = make(map[int]emulator.Stepper)
	nextHandle = 0
}
