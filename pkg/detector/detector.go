package detector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"docksmith/pkg/detector/manifests"
	"docksmith/pkg/detector/packagemanagers"

	"go.uber.org/zap"
)

// ErrUnknownFramework is returned when a framework name has no registered
// signature.
var ErrUnknownFramework = errors.New("unknown framework")

// Detector ranks a project against a closed registry of framework signatures.
type Detector struct {
	signatures []Signature
	logger     *zap.Logger
}

// New creates a Detector over the given signatures. A nil logger disables
// logging.
func New(signatures []Signature, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	sigs := make([]Signature, len(signatures))
	copy(sigs, signatures)
	return &Detector{signatures: sigs, logger: logger}
}

// Detect inspects the project rooted at root. The boolean is false when no
// framework was detected. An error is returned only when root itself cannot
// be inspected.
func (d *Detector) Detect(root string) (Detection, bool, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Detection{}, false, fmt.Errorf("cannot access project path %s: %w", root, err)
	}
	if !info.IsDir() {
		return Detection{}, false, fmt.Errorf("project path %s is not a directory", root)
	}

	det, ok := d.DetectFS(os.DirFS(root))
	return det, ok, nil
}

// DetectFS runs detection against an arbitrary filesystem.
func (d *Detector) DetectFS(fsys fs.FS) (Detection, bool) {
	results := d.Evaluate(fsys)
	if len(results) == 0 {
		d.logger.Debug("no framework detected")
		return Detection{}, false
	}

	best := pickBest(results)
	best.PackageManager = packagemanagers.Detect(best.Language, NewFSReader(fsys).Has)
	d.logger.Debug("framework detected",
		zap.String("framework", best.Framework),
		zap.Float64("confidence", best.Confidence),
		zap.Strings("signals", best.Signals))
	return best, true
}

// Evaluate returns one result per signature that found evidence, in
// declaration order.
func (d *Detector) Evaluate(fsys fs.FS) []Detection {
	reader := NewFSReader(fsys)

	var results []Detection
	for _, sig := range d.signatures {
		if det, ok := d.evaluate(reader, sig); ok {
			results = append(results, det)
		}
	}
	return results
}

func (d *Detector) evaluate(reader *FSReader, sig Signature) (Detection, bool) {
	log := d.logger.With(zap.String("framework", sig.Name))

	for _, marker := range sig.Markers {
		path, err := reader.Match(marker)
		if err != nil {
			log.Debug("marker check failed", zap.String("marker", marker), zap.Error(err))
			continue
		}
		if path != "" {
			return sig.result(ConfidenceHigh, path), true
		}
	}

	for _, manifest := range sig.Manifests {
		if !reader.Has(manifest) {
			continue
		}
		content, err := reader.Read(manifest)
		if err != nil {
			log.Debug("manifest unreadable", zap.String("manifest", manifest), zap.Error(err))
			continue
		}
		deps := manifests.Parse(manifest, content)
		for _, dep := range sig.Dependencies {
			if deps.Has(dep) {
				return sig.result(ConfidenceMedium, fmt.Sprintf("%s has %s", manifest, dep)), true
			}
		}
	}

	if sig.Check != nil && sig.Check(reader) {
		return sig.result(ConfidenceMedium, "custom check"), true
	}

	return Detection{}, false
}

func (s Signature) result(confidence float64, signal string) Detection {
	return Detection{
		Framework:        s.Name,
		Language:         s.Language,
		Confidence:       confidence,
		Signals:          []string{signal},
		InterpreterCache: s.InterpreterCache,
	}
}

// Lookup returns the signature registered under name (case-insensitive).
func (d *Detector) Lookup(name string) (Signature, error) {
	for _, sig := range d.signatures {
		if strings.EqualFold(sig.Name, strings.TrimSpace(name)) {
			return sig, nil
		}
	}
	return Signature{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownFramework, name, strings.Join(d.Frameworks(), ", "))
}

// Frameworks returns the registered framework names in declaration order.
func (d *Detector) Frameworks() []string {
	names := make([]string, 0, len(d.signatures))
	for _, sig := range d.signatures {
		names = append(names, sig.Name)
	}
	return names
}

// Signatures returns a copy of the registry in declaration order.
func (d *Detector) Signatures() []Signature {
	return append([]Signature(nil), d.signatures...)
}

// Select builds the Detection for an explicitly chosen framework, bypassing
// evidence gathering.
func (d *Detector) Select(fsys fs.FS, name string) (Detection, error) {
	sig, err := d.Lookup(name)
	if err != nil {
		return Detection{}, err
	}
	det := sig.result(1.0, "explicit selection")
	det.PackageManager = packagemanagers.Detect(sig.Language, NewFSReader(fsys).Has)
	return det, nil
}

// pickBest selects the highest confidence result; ties go to the earliest
// declared signature.
func pickBest(results []Detection) Detection {
	ranked := make([]Detection, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})
	return ranked[0]
}
