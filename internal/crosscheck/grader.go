package crosscheck

import (
	"fmt"
	"strconv"

	"nraucheck/internal/contest"
)

// gradeExchange compares the two records of one contact field by field and
// grades 0, 1 or 2. Checks run in fixed precedence and short-circuit on
// the first failure:
//
//  1. own sent exchange complete, else 0
//  2. own received exchange complete, else 0
//  3. received report equals counterpart's sent report, else 1
//  4. received serial equals counterpart's sent serial (as integers), else 1
//  5. received area equals counterpart's sent area (exact), else 1
//
// All passing is full credit.
func gradeExchange(mine, theirs *contest.QSO) Outcome {
	if !mine.Sent.Complete() {
		return Outcome{
			Points:  0,
			Reason:  IncompleteExchange,
			Detail:  fmt.Sprintf("Incomplete TX message: %v", []string(mine.Sent)),
			Matched: theirs,
		}
	}
	if !mine.Rcvd.Complete() {
		return Outcome{
			Points:  0,
			Reason:  IncompleteExchange,
			Detail:  fmt.Sprintf("Incomplete RX message: %v", []string(mine.Rcvd)),
			Matched: theirs,
		}
	}
	if mine.Rcvd.Report() != theirs.Sent.Report() {
		return Outcome{
			Points:  1,
			Reason:  FieldMismatch,
			Detail:  fmt.Sprintf("RX RST mismatch: %s copied as %s", theirs.Sent.Report(), mine.Rcvd.Report()),
			Matched: theirs,
		}
	}
	myNum, myErr := strconv.Atoi(mine.Rcvd.Serial())
	theirNum, theirErr := strconv.Atoi(theirs.Sent.Serial())
	if myErr != nil || theirErr != nil {
		return Outcome{
			Points:  1,
			Reason:  FieldMismatch,
			Detail:  fmt.Sprintf("Invalid QSO number format: %s or %s", mine.Rcvd.Serial(), theirs.Sent.Serial()),
			Matched: theirs,
		}
	}
	if myNum != theirNum {
		return Outcome{
			Points:  1,
			Reason:  FieldMismatch,
			Detail:  fmt.Sprintf("Numbering mismatch: %s copied as %s", theirs.Sent.Serial(), mine.Rcvd.Serial()),
			Matched: theirs,
		}
	}
	if mine.Rcvd.Area() != theirs.Sent.Area() {
		return Outcome{
			Points:  1,
			Reason:  FieldMismatch,
			Detail:  fmt.Sprintf("County mismatch: %s copied as %s", theirs.Sent.Area(), mine.Rcvd.Area()),
			Matched: theirs,
		}
	}
	return Outcome{Points: 2, Reason: Verified, Matched: theirs}
}
