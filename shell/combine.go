package shell

// combinePulses writes the pairwise sums of in into out:
// out[k] = in[2k] + in[2k+1]. len(in) must be 2*len(out).
func combinePulses(out, in []int) {
	for k := range out {
		out[k] = in[2*k] + in[2*k+1]
	}
}
