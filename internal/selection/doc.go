// Package selection asks the operator which streams a target should keep.
//
// Answers come from an injected AnswerSource; PromptSource reads them from a
// terminal. Validation is pure (IsValidSelection, IsValidSubtitleSelection)
// and the Selector re-asks until an answer validates, so an out-of-range
// answer is never an error. Only exhausted input or an inventory without
// video or audio aborts with services.ErrSelection.
package selection
