package utils

import "math/rand"

// Alphabet sans caractères ambigus (pas de 0/O ni 1/I)
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const inviteCodeLength = 6

// GenerateInviteCode produit un code d'invitation de groupe à 6 caractères
func GenerateInviteCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		code[i] = inviteAlphabet[rand.Intn(len(inviteAlphabet))]
	}
	return string(code)
}
