// Copyright (c) 2026 GranFondo Yalova. All rights reserved.
// Author: dev@granfondoyalova.com

package sec

// # National ID Validation
//
// Turkish national identity numbers (TC Kimlik No) are 11 digits with two
// trailing checksum digits derived from the first nine. The checksum detects
// typos and trivially forged numbers without any database lookup.

// IsValidNationalID reports whether id is a structurally valid Turkish
// national identity number.
//
// # Rules
//
//  1. Exactly 11 digits, no leading zero.
//  2. Digit 10 equals ((sum of odd-position digits)*7 − (sum of
//     even-position digits)) mod 10, where positions are 1-based over the
//     first nine digits.
//  3. Digit 11 equals the sum of the first ten digits mod 10.
func IsValidNationalID(id string) bool {
	if len(id) != 11 {
		return false
	}
	if id[0] == '0' {
		return false
	}

	digits := make([]int, 11)
	for i := 0; i < 11; i++ {
		char := id[i]
		if char < '0' || char > '9' {
			return false
		}
		digits[i] = int(char - '0')
	}

	oddSum := digits[0] + digits[2] + digits[4] + digits[6] + digits[8]
	evenSum := digits[1] + digits[3] + digits[5] + digits[7]

	// The subtraction can go negative; normalize into [0, 10).
	digit10 := ((oddSum*7-evenSum)%10 + 10) % 10
	if digits[9] != digit10 {
		return false
	}

	totalSum := 0
	for i := 0; i < 10; i++ {
		totalSum += digits[i]
	}
	digit11 := totalSum % 10

	return digits[10] == digit11
}
