//go:build windows

package secrets

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func toBlob(b []byte) windows.DataBlob {
	if len(b) == 0 {
		return windows.DataBlob{}
	}
	return windows.DataBlob{
		Size: uint32(len(b)),
		Data: &b[0],
	}
}

func fromBlob(b windows.DataBlob) []byte {
	if b.Size == 0 || b.Data == nil {
		return nil
	}
	out := make([]byte, b.Size)
	copy(out, unsafe.Slice(b.Data, b.Size))
	return out
}

// seal encrypts with DPAPI bound to the local machine so the service account
// can read what the desktop tool wrote.
func seal(plain []byte) ([]byte, error) {
	in := toBlob(plain)
	var out windows.DataBlob
	if err := windows.CryptProtectData(&in, nil, nil, 0, nil, windows.CRYPTPROTECT_LOCAL_MACHINE, &out); err != nil {
		return nil, err
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))
	return fromBlob(out), nil
}

func unseal(sealed []byte) ([]byte, error) {
	in := toBlob(sealed)
	var out windows.DataBlob
	if err := windows.CryptUnprotectData(&in, nil, nil, 0, nil, 0, &out); err != nil {
		return nil, err
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))
	return fromBlob(out), nil
}
