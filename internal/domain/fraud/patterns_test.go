package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailTemporal(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		email string
		want  bool
	}{
		{"test@10minutemail.com", true},
		{"bot@mailinator.net", true},
		{"someone@YOPMAIL.COM", true},
		{"user@guerrillamail.co.uk", true},
		{"real.person@gmail.com", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.EmailTemporal(tt.email), "email %q", tt.email)
	}
}

func TestNameRepetitive(t *testing.T) {
	p := DefaultPatterns()

	tests := []struct {
		name string
		want bool
	}{
		{"aaaa", true},
		{"Maaartin", true},
		{"xxx", true},
		{"Anna", false}, // only two consecutive
		{"ab", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.NameRepetitive(tt.name), "name %q", tt.name)
	}
}

func TestBioGeneric(t *testing.T) {
	p := DefaultPatterns()

	assert.True(t, p.BioGeneric("I am a nice person with a good heart"))
	assert.True(t, p.BioGeneric("LOOKING FOR someone special"))
	assert.False(t, p.BioGeneric("I build model trains and teach chemistry"))
	assert.False(t, p.BioGeneric(""))
}

func TestLocationVPN(t *testing.T) {
	p := DefaultPatterns()

	assert.True(t, p.LocationVPN("connected via VPN"))
	assert.True(t, p.LocationVPN("tor exit node"))
	assert.True(t, p.LocationVPN("anonymous proxy"))
	assert.False(t, p.LocationVPN("Madrid, Spain"))
	assert.False(t, p.LocationVPN(""))
}
