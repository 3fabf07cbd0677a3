package decode

import "fmt"

const (
	cidMDMF    = 0x80
	cidSDMF    = 0x04
	cidMaxSize = 256
)

// CallerID assembles Bell-202 Caller-ID (MDMF/SDMF) messages one byte at a
// time and formats the completed message as text, per spec §4.6. It has no
// framing assumption: every Decode call contributes exactly one byte of the
// message, and a message is complete once the accumulated length reaches
// buf[1]+2 (header + declared body length).
type CallerID struct {
	msgType byte
	haveType bool
	buf     []byte
}

func NewCallerID() *CallerID {
	return &CallerID{buf: make([]byte, 0, cidMaxSize)}
}

func (c *CallerID) Decode(nbits int, bits uint32) []byte {
	b := byte(bits)

	if !c.haveType {
		if b != cidMDMF && b != cidSDMF {
			return nil
		}
		c.msgType = b
		c.haveType = true
		c.buf = c.buf[:0]
	}

	if len(c.buf) >= cidMaxSize {
		// BufferOverflow: reset silently and drop the in-progress message.
		c.Reset()
		return nil
	}
	c.buf = append(c.buf, b)

	if len(c.buf) < 2 {
		return nil
	}
	want := int(c.buf[1]) + 2
	if len(c.buf) < want {
		return nil
	}

	out := c.format()
	c.Reset()
	return out
}

func (c *CallerID) format() []byte {
	var out []byte
	out = append(out, "CALLER-ID\n"...)

	if c.msgType == cidSDMF {
		body := c.buf[2:]
		if len(body) >= 8 {
			out = append(out, formatTime(body[:8])...)
		}
		if len(body) > 8 {
			out = append(out, formatPhoneLine(body[8:])...)
		}
		return out
	}

	body := c.buf[2:]
	for i := 0; i+1 < len(body); {
		datatype := body[i]
		dlen := int(body[i+1])
		start := i + 2
		end := start + dlen
		if end > len(body) {
			end = len(body)
		}
		data := body[start:end]
		i = end

		switch {
		case datatype == 1:
			out = append(out, formatTime(data)...)
		case datatype == 4 && dlen == 10:
			// Intentional compact-encoding fallthrough: treated as Name.
			out = append(out, formatNameLine(data)...)
		case datatype == 2:
			out = append(out, formatPhoneLine(data)...)
		case datatype == 7:
			out = append(out, formatNameLine(data)...)
		case datatype == 4 || datatype == 8:
			out = append(out, formatNALine(data)...)
		}
	}
	return out
}

func formatTime(data []byte) []byte {
	if len(data) < 8 {
		return nil
	}
	return []byte(fmt.Sprintf("Time:  %c%c/%c%c %c%c:%c%c\n",
		data[0], data[1], data[2], data[3], data[4], data[5], data[6], data[7]))
}

func formatPhoneLine(data []byte) []byte {
	return []byte(fmt.Sprintf("Number: %s\n", formatPhone(data)))
}

func formatPhone(data []byte) string {
	if len(data) == 10 {
		return fmt.Sprintf("%s-%s-%s", data[0:3], data[3:6], data[6:10])
	}
	return string(data)
}

func formatNameLine(data []byte) []byte {
	return []byte(fmt.Sprintf("Name: %s\n", string(data)))
}

func formatNALine(data []byte) []byte {
	switch string(data) {
	case "O":
		return []byte("Number: [N/A]\n")
	case "P":
		return []byte("Number: [blocked]\n")
	default:
		return nil
	}
}

func (c *CallerID) Reset() {
	c.haveType = false
	c.buf = c.buf[:0]
}
