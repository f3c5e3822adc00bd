// Package invoicepdf renders the association's financial documents as PDFs
// drawn onto a fixed letterhead.
//
// One parameterized engine serves four document variants: the standard
// invoice, the paid invoice, the event (rendezvous) invoice with its
// attendee list, and the generic letter. A variant is a fixed sequence of
// section renderers, each of which consumes the layout cursor, draws its
// block, and advances the cursor; page overflow is checked before every
// block so content is never clipped.
//
//	tpl, err := letterhead.Load("assets/letterhead.pdf")
//	if err != nil {
//		return err
//	}
//	eng := invoicepdf.New(invoicepdf.WithTemplate(tpl))
//	doc, err := eng.RenderInvoice(ctx, inv)
//	if err != nil {
//		return err
//	}
//	send(doc.Filename, doc.Base64())
//
// Rendering is synchronous and allocates a fresh working document per call,
// so an Engine may be shared freely between concurrent requests. All
// failures abort the whole render; the engine never returns a partial PDF.
package invoicepdf
