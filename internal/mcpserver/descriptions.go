package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to interpret results.

func describeDuplicates() string {
	return `Detects duplicated and near-duplicated code across a multi-language codebase.

USE WHEN:
- Auditing a codebase for copy-paste reuse before refactoring
- Checking whether a bug fix needs to land in more than one place
- Measuring how much of the codebase is redundant

INTERPRETING RESULTS:
- type=exact: whole files identical after whitespace normalization (confidence 1.0)
- type=exact_block: identical line windows of at least min_lines (confidence 1.0)
- type=token_sequence: identical token runs that survive reformatting (confidence 0.9)
- type=fuzzy: file pairs above the similarity threshold
- type=similar_block: named blocks sharing most of their vocabulary
- type=structural: blocks identical after renaming identifiers and literals (confidence 0.85)
- type=css_block: duplicated style rules, including <style> tags and CSS-in-JS
- duplicate_lines in the summary is the removable line count if every group
  were collapsed to one copy

RESULTS RETURNED:
- duplicates: ordered group list with files, blocks, hashes, and confidence
- summary: counts by type, confidence quantiles, duplicate line estimate
- By default redundant findings are suppressed for readability; pass raw=true
  for the full merged sequence`
}

func describePreviewRefactor() string {
	return `Plans refactorings for detected duplicates and previews their effect.

USE WHEN:
- Deciding which duplicate group to fix first
- Estimating how many lines a deduplication pass would remove
- Turning detection output into concrete extract/parameterize steps

INTERPRETING RESULTS:
- strategy: extract_module (whole files), extract_method (line blocks),
  parameterize (token/similar matches), extract_class (structural matches)
- priority: 1 is the safest highest-value fix; 3 needs human judgment
- lines_removed: estimated lines deleted if the suggestion is applied
- No tool call modifies files; applying a plan is always a manual step

RESULTS RETURNED:
- suggestions: total planned refactorings
- previews: per-suggestion strategy, affected files, and savings estimate`
}
