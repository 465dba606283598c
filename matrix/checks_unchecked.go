// SPDX-License-Identifier: MIT
//go:build lvmat_unchecked

package matrix

const checksEnabled = false
