// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

// Surface is the display surface a [Panel] is attached to.
// All calls are made from within collection event handlers.
type Surface interface {

	// SuspendLayout suspends layout and animation recomputation
	// until the matching ResumeLayout.
	SuspendLayout()

	// ResumeLayout resumes layout and animation recomputation and
	// lays out the panel once.
	ResumeLayout()

	// SetBusy shows or hides the busy indicator.
	SetBusy(busy bool)
}

// Attach attaches the panel to the given display surface.
func (p *Panel) Attach(s Surface) {
	p.surface = s
}

// Detach detaches the panel from its display surface.
func (p *Panel) Detach() {
	p.surface = nil
}

// Surface returns the attached surface, or nil.
func (p *Panel) Surface() Surface {
	return p.surface
}

// batch opens a structural batch, suspending layout on the surface
// when it is the outermost one, and returns the function that closes
// it. The returned function resumes layout exactly once however many
// times it is called, so it is safe to defer on every exit path:
//
//	defer p.batch()()
func (p *Panel) batch() func() {
	p.batchDepth++
	if p.batchDepth == 1 {
		p.batchSurface = p.surface
		if p.batchSurface != nil {
			p.batchSurface.SuspendLayout()
		}
	}
	closed := false
	return func() {
		if closed {
			return
		}
		closed = true
		p.batchDepth--
		if p.batchDepth > 0 {
			return
		}
		p.batches++
		if s := p.batchSurface; s != nil {
			p.batchSurface = nil
			s.ResumeLayout()
		}
	}
}

// InBatch returns whether a structural batch is currently open.
func (p *Panel) InBatch() bool {
	return p.batchDepth > 0
}

// NumBatches returns the number of structural batches completed
// since the panel was created.
func (p *Panel) NumBatches() int {
	return p.batches
}
