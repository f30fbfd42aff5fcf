package diagnosis

import "io"

// progressReader wraps the request body and reports upload progress as whole
// percents. Reported values are clamped to [0,100] and strictly increasing;
// repeated reads at the same percent stay silent.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	last   int
	report func(percent int)
}

func newProgressReader(r io.Reader, total int64, report func(int)) *progressReader {
	return &progressReader{r: r, total: total, last: -1, report: report}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.emit()
	}
	return n, err
}

func (p *progressReader) emit() {
	if p.report == nil || p.total <= 0 {
		return
	}
	percent := int(p.sent * 100 / p.total)
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent > p.last {
		p.last = percent
		p.report(percent)
	}
}
