package domain

// VerificationResult is produced and consumed within one run.
type VerificationResult struct {
	ExecutableFound bool
	VersionProbeOk  bool
	Details         string
}

// OK reports whether both verification steps passed.
func (v VerificationResult) OK() bool {
	return v.ExecutableFound && v.VersionProbeOk
}
