//go:build !windows

package secrets

// Outside Windows there is no machine key store; the secret file relies on its
// 0600 permissions.
func seal(plain []byte) ([]byte, error) {
	return append([]byte(nil), plain...), nil
}

func unseal(stored []byte) ([]byte, error) {
	return append([]byte(nil), stored...), nil
}
