package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// response is the grouped shape returned by the timeline service.
type response struct {
	Stays    []Record `json:"stays"`
	Trips    []Record `json:"trips"`
	DataGaps []Record `json:"dataGaps"`
}

// DecodeRecords reads records from r. The input is either a JSON array of
// records or an object with stays, trips and dataGaps arrays, in which case
// records without a kind take the kind of the array they appear in.
func DecodeRecords(r io.Reader) ([]Record, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}

	if b[0] == '[' {
		var records []Record

		if err := json.Unmarshal(b, &records); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}

		return records, nil
	}

	var resp response

	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, fmt.Errorf("decoding timeline response: %w", err)
	}

	records := make([]Record, 0, len(resp.Stays)+len(resp.Trips)+len(resp.DataGaps))
	records = appendKind(records, resp.Stays, KindStay)
	records = appendKind(records, resp.Trips, KindTrip)
	records = appendKind(records, resp.DataGaps, KindGap)

	return records, nil
}

func appendKind(dst, src []Record, kind Kind) []Record {
	for i := range src {
		if src[i].Kind == "" {
			src[i].Kind = kind
		}

		dst = append(dst, src[i])
	}

	return dst
}
