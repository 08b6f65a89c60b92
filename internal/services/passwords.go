package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  int
	keyLength   int
}

var defaultArgon2 = argon2Params{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 1,
	saltLength:  16,
	keyLength:   32,
}

// hashArgon2id encodes as $argon2id$v=19$m=..,t=..,p=..$salt$key.
func hashArgon2id(raw string) (string, error) {
	p := defaultArgon2
	salt := make([]byte, p.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(raw), salt, p.iterations, p.memory, p.parallelism, uint32(p.keyLength))
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.memory, p.iterations, p.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyArgon2id(raw, encoded string) bool {
	p, salt, hash, err := decodeArgon2id(encoded)
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(raw), salt, p.iterations, p.memory, p.parallelism, uint32(p.keyLength))
	return subtle.ConstantTimeCompare(hash, key) == 1
}

func decodeArgon2id(encoded string) (argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return argon2Params{}, nil, nil, errors.New("invalid hash format")
	}
	var p argon2Params
	for _, kv := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return argon2Params{}, nil, nil, err
		}
		switch key {
		case "m":
			p.memory = uint32(n)
		case "t":
			p.iterations = uint32(n)
		case "p":
			p.parallelism = uint8(n)
		}
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return argon2Params{}, nil, nil, errors.New("invalid hash parameters")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argon2Params{}, nil, nil, err
	}
	p.saltLength = len(salt)
	p.keyLength = len(hash)
	return p, salt, hash, nil
}
