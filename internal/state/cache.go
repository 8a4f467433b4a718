// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package state

import "sync"

// PasswordCache hands the password typed at a prompt or in the login form to
// the login call. Callers wipe it with Clear once the request has been sent.
var PasswordCache = &passwordMailbox{}

type passwordMailbox struct {
	mu    sync.RWMutex
	value []byte
}

// Set stores a copy of pass, replacing and wiping any previous value.
func (p *passwordMailbox) Set(pass []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	wipe(p.value)
	if pass == nil {
		p.value = nil
		return
	}
	p.value = append([]byte(nil), pass...)
}

// Get returns a copy of the stored password, or nil. The caller owns the
// copy and should zero it after use.
func (p *passwordMailbox) Get() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.value == nil {
		return nil
	}
	return append([]byte(nil), p.value...)
}

// Take returns the stored password and empties the mailbox.
func (p *passwordMailbox) Take() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := p.value
	p.value = nil
	return v
}

// Clear zeroes and drops the stored password.
func (p *passwordMailbox) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	wipe(p.value)
	p.value = nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
