package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func newHTTPClient() *resty.Client {
	return resty.New().SetTimeout(15 * time.Second)
}

func doGet(url, token string) ([]byte, error) {
	req := newHTTPClient().R()
	if token != "" {
		req.SetAuthToken(token)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return checkStatus(resp)
}

func doPostJSON(url, token string, payload interface{}) ([]byte, error) {
	req := newHTTPClient().R().SetBody(payload)
	if token != "" {
		req.SetAuthToken(token)
	}
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return checkStatus(resp)
}

func checkStatus(resp *resty.Response) ([]byte, error) {
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
