package detect

// tokenSequenceGroups slides a MinTokens window over every file's token
// stream and groups identical windows across the batch. Files whose
// tokenization produced nothing are skipped entirely.
func (d *Detector) tokenSequenceGroups(files []FileRecord) []Group {
	minTokens := d.config.MinTokens
	byHash := newBuckets[TokenMatch]()

	for _, f := range files {
		if len(f.Tokens) < minTokens {
			continue
		}
		for start := 0; start+minTokens <= len(f.Tokens); start++ {
			window := f.Tokens[start : start+minTokens]
			byHash.add(HashTokens(window), TokenMatch{
				File:     f.Path,
				Tokens:   window,
				Position: start,
			})
		}
	}

	var groups []Group
	byHash.each(func(fp Fingerprint, members []TokenMatch) {
		if len(members) < 2 {
			return
		}
		groups = append(groups, Group{
			Type:       TypeTokenSequence,
			Hash:       fp.String(),
			Windows:    members,
			Count:      len(members),
			TokenCount: minTokens,
			Confidence: ConfidenceTokenSequence,
		})
	})
	return groups
}
