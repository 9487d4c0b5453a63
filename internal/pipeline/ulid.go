package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULID generation for job ids: 26-character Crockford Base32 strings
// with a 48-bit timestamp prefix, monotonic within a millisecond.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	// Sequence in bytes 6-7 keeps ids unique within the same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	// 128 bits render as 26 base32 characters, 2 zero bits of padding
	// in front so the groups align.
	var out [26]byte
	bitpos := -2
	for i := range out {
		var v byte
		for k := 0; k < 5; k++ {
			v <<= 1
			p := bitpos + k
			if p >= 0 && b[p/8]&(1<<(7-p%8)) != 0 {
				v |= 1
			}
		}
		out[i] = crockford[v]
		bitpos += 5
	}
	return string(out[:])
}
