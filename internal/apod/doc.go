// Package apod talks to NASA's Astronomy Picture of the Day API.
//
// # Overview
//
// The package covers everything Stargazer needs from the provider:
//
//   - Client.FetchRecord: one GET per date, returning a Record
//   - ImageLoader.FetchImage: downloads and decodes the picture a Record points at
//   - SampleDate / RandomDate: picks "today" in a random archive year
//
// # Request Format
//
//	GET https://api.nasa.gov/planetary/apod?api_key=KEY&date=YYYY-MM-DD
//
// The response body is decoded into Record. The client never inspects
// media_type; callers decide what to do with videos and other media.
//
// # Error Handling
//
// FetchRecord returns:
//
//   - *HTTPError for any non-2xx status. Status holds the code and Message the
//     provider's own explanation when the body carries one.
//   - *NetworkError when the request never produced a response.
//   - a wrapped "decode response" error for malformed JSON.
//
// Use errors.As to tell them apart.
//
// # Date Sampling
//
// The archive starts on 1995-06-16. SampleDate keeps the current month and day
// and chooses the year uniformly. If the draw is 1995 and today's month/day
// falls before June 16, the year is drawn once more from 1996 onwards, so the
// result is never earlier than FirstDate.
package apod
