package core

// utoa formats n in decimal. The event ring dump runs on the firmware,
// where fmt is not linked in.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// utoaHex formats n as lower-case hex with a 0x prefix.
func utoaHex(n uint32) string {
	if n == 0 {
		return "0x0"
	}

	const hexDigits = "0123456789abcdef"
	var buf [10]byte
	pos := len(buf)

	for n > 0 {
		pos--
		buf[pos] = hexDigits[n&0xf]
		n >>= 4
	}

	pos -= 2
	buf[pos] = '0'
	buf[pos+1] = 'x'

	return string(buf[pos:])
}
