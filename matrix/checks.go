// SPDX-License-Identifier: MIT
//go:build !lvmat_unchecked

package matrix

// checksEnabled gates range, storage and dimension assertions. Building with
// -tags lvmat_unchecked removes them; violating a contract is then undefined
// behavior (typically a slice bounds panic or a silently wrong value).
const checksEnabled = true
