package lab

// BatchResult is the outcome of one request in a batch. Exactly one of Receipt or Err is set.
type BatchResult struct {
	Request RequestRecord
	Receipt *Receipt
	Err     error
}

// RunBatch checks out each request in order. A failing request never stops the batch.
// Requests with hours outside [1,6] fail at construction and never reach the service.
func RunBatch(svc *CheckoutService, requests []RequestRecord, report func(BatchResult)) (succeeded, failed int) {
	for _, rec := range requests {
		res := BatchResult{Request: rec}
		req, err := NewCheckoutRequest(rec.UID, rec.AssetID, rec.Hours)
		if err == nil {
			var receipt Receipt
			if receipt, err = svc.Checkout(req); err == nil {
				res.Receipt = &receipt
			}
		}
		res.Err = err
		if err != nil {
			failed++
		} else {
			succeeded++
		}
		if report != nil {
			report(res)
		}
	}
	return succeeded, failed
}
