package worldbank

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// pageMeta is the first element of every API response.
type pageMeta struct {
	Page    flexInt `json:"page"`
	Pages   flexInt `json:"pages"`
	PerPage flexInt `json:"per_page"`
	Total   flexInt `json:"total"`
	Message []struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"message"`
}

// flexInt accepts both 3 and "3"; older API responses quote paging fields.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %s", b)
	}
	*n = flexInt(v)
	return nil
}

type idValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// row is one observation of the second response element. Value is null when
// the provider has no data for that country and year.
type row struct {
	Indicator idValue  `json:"indicator"`
	Country   idValue  `json:"country"`
	ISO3      string   `json:"countryiso3code"`
	Date      string   `json:"date"`
	Value     *float64 `json:"value"`
}

func (r row) record() (Record, bool) {
	if r.Value == nil {
		return Record{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(r.Date))
	if err != nil {
		return Record{}, false
	}
	return Record{
		Country:   strings.ToUpper(r.Country.ID),
		Year:      year,
		Indicator: r.Indicator.ID,
		Value:     *r.Value,
	}, true
}

func decodePage(body []byte) (pageMeta, []row, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: malformed response: %v", ErrProvider, err)
	}
	if len(parts) == 0 {
		return pageMeta{}, nil, fmt.Errorf("%w: empty response", ErrProvider)
	}

	var meta pageMeta
	if err := json.Unmarshal(parts[0], &meta); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: malformed page header: %v", ErrProvider, err)
	}
	if len(meta.Message) > 0 {
		msgs := make([]string, 0, len(meta.Message))
		for _, m := range meta.Message {
			msgs = append(msgs, strings.TrimSpace(m.Key+": "+m.Value))
		}
		return pageMeta{}, nil, fmt.Errorf("%w: %s", ErrProvider, strings.Join(msgs, "; "))
	}

	// A query with no data answers with a header and a null second element.
	if len(parts) < 2 || string(parts[1]) == "null" {
		return meta, nil, nil
	}

	var rows []row
	if err := json.Unmarshal(parts[1], &rows); err != nil {
		return pageMeta{}, nil, fmt.Errorf("%w: malformed rows: %v", ErrProvider, err)
	}
	return meta, rows, nil
}
