// Package binary downloads release archives and unpacks them into a
// version directory.
//
// # Fetch pipeline
//
// A Fetcher runs three steps for every request:
//
//  1. Download the archive into a private download directory (Downloader)
//  2. Optionally verify it against companion checksum and signature
//     assets (Verifier)
//  3. Extract it into a staging directory next to the destination and
//     rename the staging directory into place (Extractor)
//
// A failure at any step removes the archive and the staging directory, so
// the destination either holds a complete extraction or does not exist.
//
// # Verification
//
// Releases are trusted on exact file name plus transport integrity by
// default (VerifyNone). VerifyIfAvailable checks whatever companion assets
// the release carries; VerifyRequired additionally fails when none are
// published. Signatures are OpenPGP detached signatures checked against a
// keyring file.
//
// # Usage
//
//	fetcher, err := binary.NewFetcher(binary.FetcherConfig{
//	    DownloadDir: filepath.Join(stateDir, "downloads"),
//	})
//	if err != nil {
//	    return err
//	}
//
//	err = fetcher.FetchAndExtract(ctx, binary.FetchRequest{
//	    URL:     asset.URL,
//	    Name:    asset.Name,
//	    DestDir: filepath.Join(workDir, "azure-mcp-1.2.3"),
//	    Kind:    binary.ArchiveGzipTar,
//	})
package binary
