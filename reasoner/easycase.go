package reasoner

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/labeling"
)

// gInYESForDC/gInYESForDS is the set of semantics for which the query
// argument being in G_in (the grounded IN set) immediately decides
// DC/DS acceptance YES, per spec §4.2.
var gInYESForDC = map[Semantics]bool{CO: true, PR: true, SST: true, ID: true}
var gInYESForDS = map[Semantics]bool{PR: true, ST: true, SST: true, ID: true}

// gOutNOForDC/gOutNOForDS mirror gInYES* for the query argument being in
// G_out.
var gOutNOForDC = map[Semantics]bool{CO: true, PR: true, SST: true, ID: true, ST: true}
var gOutNOForDS = map[Semantics]bool{PR: true, SST: true, ID: true}

// easyCase implements the grounded-dispatcher shortcuts of spec §4.2: a
// handful of observations forced by the grounded extension alone, avoiding
// a SAT call entirely. It returns handled=false when the full solver must
// run for this track.
func easyCase(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, bool, error) {
	t := spec.Track

	// Self-loop: never credulously accepted under any semantics; never
	// skeptically accepted except DS-ST, where a missing stable extension
	// makes skeptical acceptance vacuously true (still requires the
	// existence check, so DS-ST falls through to the full solver).
	if spec.HasArg && a.Loops.Get(spec.Arg) {
		if t.Mode == ModeDC {
			return &Result{Decision: false, HasDecision: true}, true, nil
		}
		if t.Mode == ModeDS && t.Semantics != ST {
			return &Result{Decision: false, HasDecision: true}, true, nil
		}
	}

	// §4.5: these six always answer directly from the grounded labeling,
	// with no SAT call ever required.
	switch {
	case t.Mode == ModeSE && (t.Semantics == GR || t.Semantics == CO):
		return &Result{Witness: witnessFromLabeling(g), HasWitness: true}, true, nil
	case t.Mode == ModeEE && t.Semantics == GR:
		return &Result{Witness: witnessFromLabeling(g), HasWitness: true}, true, nil
	case t.Mode == ModeDC && t.Semantics == GR:
		return &Result{Decision: g.Get(spec.Arg) == labeling.IN, HasDecision: true}, true, nil
	case t.Mode == ModeDS && t.Semantics == GR:
		return &Result{Decision: g.Get(spec.Arg) == labeling.IN, HasDecision: true}, true, nil
	case t.Mode == ModeDS && t.Semantics == CO:
		return &Result{Decision: g.Get(spec.Arg) == labeling.IN, HasDecision: true}, true, nil
	}

	if !spec.HasArg {
		return nil, false, nil
	}

	if g.Get(spec.Arg) == labeling.IN {
		decided := (t.Mode == ModeDC && gInYESForDC[t.Semantics]) || (t.Mode == ModeDS && gInYESForDS[t.Semantics])
		if decided {
			res := &Result{Decision: true, HasDecision: true}
			if spec.Witness {
				w, err := witnessForSemantics(spec, a, g, t.Semantics, newSession)
				if err != nil {
					return nil, true, err
				}
				res.Witness, res.HasWitness = w, true
			}
			return res, true, nil
		}
	}

	if g.Get(spec.Arg) == labeling.OUT {
		decided := (t.Mode == ModeDC && gOutNOForDC[t.Semantics]) || (t.Mode == ModeDS && gOutNOForDS[t.Semantics])
		if decided {
			res := &Result{Decision: false, HasDecision: true}
			if spec.Witness {
				w, err := witnessForSemantics(spec, a, g, t.Semantics, newSession)
				if err != nil {
					return nil, true, err
				}
				res.Witness, res.HasWitness = w, true
			}
			return res, true, nil
		}
	}

	return nil, false, nil
}

// witnessForSemantics runs the SE-* task matching semantics to produce a
// witness extension for an easy-case decision (spec §4.2: "a witness, if
// requested, is obtained by running the corresponding SE-* task").
func witnessForSemantics(spec TaskSpec, a *af.AF, g *labeling.Labeling, sem Semantics, newSession sessionFactory) ([]int, error) {
	seSpec := spec
	seSpec.Track = Track{Mode: ModeSE, Semantics: sem}
	res, err := dispatchSE(seSpec, a, g, newSession)
	if err != nil {
		return nil, err
	}
	return res.Witness, nil
}
