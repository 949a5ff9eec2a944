package casefile

import (
	"context"

	"regexfsm/regexlib"
)

// Result is the outcome of one case. Err is set when the pattern is
// malformed; Accepted is meaningless then.
type Result struct {
	Case     *Case
	Accepted bool
	Err      error
}

// Failed reports whether the case broke its expectation or could not run.
func (r Result) Failed() bool {
	if r.Err != nil {
		return true
	}
	want, ok := r.Case.Expected()
	return ok && want != r.Accepted
}

// Summary counts results.
type Summary struct {
	Total  int
	Failed int
}

// Run matches every case, compiling each distinct pattern once.
func Run(ctx context.Context, f *File) ([]Result, Summary) {
	compiled := map[string]*regexlib.Regex{}
	failed := map[string]error{}

	results := make([]Result, 0, len(f.Cases))
	var sum Summary
	for _, c := range f.Cases {
		res := Result{Case: c}
		re, ok := compiled[c.Pattern]
		if !ok {
			if err, bad := failed[c.Pattern]; bad {
				res.Err = err
			} else if re, res.Err = regexlib.CompileContext(ctx, c.Pattern); res.Err != nil {
				failed[c.Pattern] = res.Err
			} else {
				compiled[c.Pattern] = re
			}
		}
		if res.Err == nil {
			res.Accepted = re.MatchString(c.Subject)
		}

		sum.Total++
		if res.Failed() {
			sum.Failed++
		}
		results = append(results, res)
	}
	return results, sum
}
