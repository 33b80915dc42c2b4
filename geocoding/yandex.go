package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultYandexURL = "https://geocode-maps.yandex.ru/1.x"

type YandexGeocoder struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewYandexGeocoder(apiKey, baseURL string) *YandexGeocoder {
	if baseURL == "" {
		baseURL = DefaultYandexURL
	}
	return &YandexGeocoder{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type yandexResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Fetch asks the geocoder for the best match of address and returns
// ErrNotFound when there is none.
func (g *YandexGeocoder) Fetch(ctx context.Context, address string) (Coordinates, error) {
	if g.APIKey == "" {
		return Coordinates{}, errors.New("missing geocoder api key")
	}

	query := url.Values{}
	query.Set("apikey", g.APIKey)
	query.Set("format", "json")
	query.Set("geocode", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return Coordinates{}, err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return Coordinates{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Coordinates{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocoder api error: status %d: %s", resp.StatusCode, string(raw))
	}

	var result yandexResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return Coordinates{}, fmt.Errorf("decode geocoder response: %w", err)
	}

	found := result.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		return Coordinates{}, ErrNotFound
	}

	return parsePos(found[0].GeoObject.Point.Pos)
}

// parsePos reads the "lon lat" pair the geocoder puts into Point.pos.
func parsePos(pos string) (Coordinates, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return Coordinates{}, fmt.Errorf("unexpected point %q", pos)
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
