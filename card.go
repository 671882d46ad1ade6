package goldcard

import "net/url"

// DefaultEndpoint is the GOLD card CGI endpoint.
const DefaultEndpoint = "http://genomesonline.org/cgi-bin/GOLD/GOLDCards.cgi"

// CardURL returns the URL of the card for goldstamp, e.g.
// GOLDCards.cgi?goldstamp=Gi0046999.
func CardURL(endpoint, goldstamp string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", Errorf(EINVALID, "invalid endpoint %q: %v", endpoint, err)
	}
	q := u.Query()
	q.Set("goldstamp", goldstamp)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
