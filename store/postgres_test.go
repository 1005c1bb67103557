// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

package store

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("recon database configuration", func() {

	It("renders a minimal DSN", func() {
		dsn := Config{
			Host:     "localhost",
			User:     "recon",
			Database: "recon",
		}.DSN()
		Expect(dsn).To(Equal("host=localhost user=recon dbname=recon sslmode=disable"))
	})

	It("renders optional parameters", func() {
		dsn := Config{
			Host:     "db.internal",
			Port:     5433,
			User:     "recon",
			Password: "sw0rdfish",
			Database: "recon",
			SSLMode:  "require",
		}.DSN()
		Expect(dsn).To(Equal(
			"host=db.internal user=recon dbname=recon port=5433 password=sw0rdfish sslmode=require"))
	})

	It("quotes values that would break the keyword/value syntax", func() {
		dsn := Config{
			Host:     "localhost",
			User:     "recon",
			Password: "it's complicated",
			Database: "recon",
		}.DSN()
		Expect(dsn).To(ContainSubstring(`password='it\'s complicated'`))
	})

})
