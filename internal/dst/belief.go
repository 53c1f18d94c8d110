package dst

// Bel returns the belief in q: the total mass of focal elements whose
// hypothesis set entails q, that is, is a subset of q. The empty pad
// contributes nothing because its mass is zero.
func Bel[S Set[S]](bba []Focal[S], q S) float32 {
	var sum float32
	for _, f := range bba {
		if f.Hyp.IsSubset(q) {
			sum += f.Mass
		}
	}
	return sum
}

// Pl returns the plausibility of q: one minus the belief in its complement.
// Plausibility counts every focal element consistent with q, so for a single
// well-formed assignment Bel(q) <= Pl(q).
func Pl[S Set[S]](bba []Focal[S], q S) float32 {
	return 1 - Bel(bba, q.Complement())
}
