package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nerofit/relay/pkg/client"
)

func main() {
	c := client.NewClient("http://localhost:3000")

	health, err := c.Health()
	if err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	fmt.Printf("health: %s\n", health)

	wallet := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

	resp, err := c.ConnectWallet(client.ConnectWalletRequest{WalletAddress: wallet})
	if err != nil {
		log.Fatalf("connect wallet failed: %v", err)
	}
	fmt.Printf("connected: %s\n", resp.Message)
	fmt.Printf("unsigned tx: %s\n", resp.SponsoredTransaction.Transaction)

	claim, err := c.ClaimTokens(wallet)
	if err != nil {
		log.Fatalf("claim tokens failed: %v", err)
	}
	// The frontend wallet takes sponsorData from here and completes
	// signing and broadcast; the relay's job ends at this point.
	sponsorData, _ := json.Marshal(claim.SponsoredTransaction.SponsorData)
	fmt.Printf("claim initiated, sponsor data: %s\n", sponsorData)

	data, err := c.UserData(wallet)
	if err != nil {
		log.Fatalf("user data failed: %v", err)
	}
	fmt.Printf("fit tokens: %s, challenge completed: %v\n", data.FitTokens, data.ChallengeCompleted)
}
